package toml

import (
	"fmt"

	"github.com/bnema/emetic/internal/domain"
)

const currentSchemaVersion = 1

type fileSchema struct {
	Version   int               `toml:"version"`
	UpdatedAt string            `toml:"updated_at,omitempty"`
	Cookies   map[string]string `toml:"cookies"`
	Identity  identitySchema    `toml:"identity"`
}

type identitySchema struct {
	DeptCode string `toml:"dept_cd"`
	MemberNo string `toml:"mbr_no"`
}

func (s *fileSchema) applyDefaults() {
	if s.Version == 0 {
		s.Version = currentSchemaVersion
	}
	if s.Cookies == nil {
		s.Cookies = map[string]string{}
	}
}

func (s fileSchema) validateVersion() error {
	if s.Version > currentSchemaVersion {
		return fmt.Errorf("unsupported cache schema version %d (current %d)", s.Version, currentSchemaVersion)
	}

	return nil
}

func toSchema(state domain.CacheState) fileSchema {
	cookies := make(map[string]string, len(state.Cookies))
	for name, value := range state.Cookies {
		cookies[name] = value
	}

	return fileSchema{
		Version: currentSchemaVersion,
		Cookies: cookies,
		Identity: identitySchema{
			DeptCode: state.Identity.DeptCode,
			MemberNo: state.Identity.MemberNo,
		},
	}
}

func fromSchema(file fileSchema) domain.CacheState {
	return domain.CacheState{
		Cookies: file.Cookies,
		Identity: domain.Identity{
			DeptCode: file.Identity.DeptCode,
			MemberNo: file.Identity.MemberNo,
		},
	}
}
