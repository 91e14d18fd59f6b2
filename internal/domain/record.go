package domain

import (
	"strconv"
	"strings"
	"time"
)

// Zone is the fixed UTC+9 offset the remote form records times in.
var Zone = time.FixedZone("KST", 9*60*60)

const SymptomCount = 6

const (
	SymptomCough = iota
	SymptomSoreThroat
	SymptomDyspnea
	SymptomFever
	SymptomLossOfSmellOrTaste
	SymptomOther
)

type Symptoms [SymptomCount]bool

// String renders the fixed-width presence string, "O" present and "_" absent.
func (s Symptoms) String() string {
	var b strings.Builder
	for _, present := range s {
		if present {
			b.WriteByte('O')
		} else {
			b.WriteByte('_')
		}
	}
	return b.String()
}

func (s Symptoms) Any() bool {
	for _, present := range s {
		if present {
			return true
		}
	}
	return false
}

type Record struct {
	Timestamp   time.Time
	Temperature float64
	Symptoms    Symptoms
	Note        string
}

// TemperatureText renders the temperature the way the form stores it.
func (r Record) TemperatureText() string {
	return strconv.FormatFloat(r.Temperature, 'f', 1, 64)
}

type Identity struct {
	DeptCode string
	MemberNo string
}

func (i Identity) Complete() bool {
	return i.DeptCode != "" && i.MemberNo != ""
}

// CacheState is what survives between runs.
type CacheState struct {
	Cookies  map[string]string
	Identity Identity
}

// Checkpoint splits the day into two halves: noon when now is at or after
// 12:00 local time, midnight otherwise.
func Checkpoint(now time.Time) time.Time {
	local := now.In(Zone)
	year, month, day := local.Date()
	if local.Hour() >= 12 {
		return time.Date(year, month, day, 12, 0, 0, 0, Zone)
	}
	return time.Date(year, month, day, 0, 0, 0, 0, Zone)
}

// RecordedSince reports whether any record is at or after the checkpoint for now.
func RecordedSince(records []Record, now time.Time) bool {
	checkpoint := Checkpoint(now)
	for _, record := range records {
		if !record.Timestamp.Before(checkpoint) {
			return true
		}
	}
	return false
}
