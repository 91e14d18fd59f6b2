package zeus

import (
	"context"
	"fmt"
	"net/url"

	"github.com/goccy/go-json"

	"github.com/bnema/emetic/internal/domain"
	"github.com/bnema/emetic/internal/ssv"
)

const (
	roleDataset   = "dsUserRole"
	selectDataset = "dsMain"

	roleDeptColumn   = "BASE_DEPT_CD"
	roleMemberColumn = "MBR_NO"
)

type loginReply struct {
	ErrorMsg string `json:"error_msg"`
}

// Login posts the credentials as a form. Success requires both session
// cookies to be present afterwards.
func (c *Client) Login(ctx context.Context, username, password string) error {
	form := url.Values{}
	form.Set("login_id", username)
	form.Set("login_pw", password)

	resp, err := c.send(ctx, exchange{
		op:          "login",
		path:        loginPath,
		contentType: formContentType,
		accept:      "application/json, text/javascript, */*; q=0.01",
		referer:     "/sys/main/login.do",
		body:        []byte(form.Encode()),
		xhr:         true,
	})
	if err != nil {
		return err
	}

	body := string(resp.Body)
	if unescaped, err := url.PathUnescape(body); err == nil {
		body = unescaped
	}

	var reply loginReply
	if err := json.Unmarshal([]byte(body), &reply); err != nil {
		return fmt.Errorf("login: decode reply: %w: %w", domain.ErrUnexpectedResponse, err)
	}
	if reply.ErrorMsg != "" {
		return fmt.Errorf("login: %w", &domain.ProtocolError{Message: reply.ErrorMsg})
	}

	if !c.session.Authenticated() {
		return fmt.Errorf("login: %w", domain.ErrLoginIncomplete)
	}

	return nil
}

// FetchRole reads the department code and member number of the logged in user.
func (c *Client) FetchRole(ctx context.Context) (domain.Identity, error) {
	const op = "fetch role"

	monitor, err := c.monitorID(op)
	if err != nil {
		return domain.Identity{}, err
	}

	params := ssv.Params{
		{Field: domain.CookieMonitorID, Value: monitor},
		{Field: "pg_key", Value: ""},
		{Field: "pg_nm", Value: ""},
		{Field: "page_open_time", Value: ""},
		{Field: "page_open_time_on", Value: ""},
	}

	doc, err := c.call(ctx, op, rolePath, params)
	if err != nil {
		return domain.Identity{}, err
	}

	dataset, ok := doc.Dataset(roleDataset)
	if !ok {
		return domain.Identity{}, fmt.Errorf("%s: %w: missing %s", op, domain.ErrUnexpectedResponse, roleDataset)
	}

	dept := dataset.ColumnIndex(roleDeptColumn)
	member := dataset.ColumnIndex(roleMemberColumn)
	if dept < 0 || member < 0 {
		return domain.Identity{}, fmt.Errorf("%s: %w: columns %v", op, domain.ErrUnexpectedResponse, dataset.ColumnIDs())
	}
	if len(dataset.Rows) == 0 {
		return domain.Identity{}, fmt.Errorf("%s: %w: %s has no rows", op, domain.ErrUnexpectedResponse, roleDataset)
	}

	row := dataset.Rows[0]
	return domain.Identity{
		DeptCode: row.Cell(dept).String(),
		MemberNo: row.Cell(member).String(),
	}, nil
}

// Select lists this month's records of the department.
func (c *Client) Select(ctx context.Context, identity domain.Identity) ([]domain.Record, error) {
	const op = "select"

	monitor, err := c.monitorID(op)
	if err != nil {
		return nil, err
	}
	if identity.DeptCode == "" {
		return nil, fmt.Errorf("%s: %w: department code unknown", op, domain.ErrNotAuthenticated)
	}

	now := c.clock.Now().In(domain.Zone)
	params := ssv.Params{
		{Field: domain.CookieMonitorID, Value: monitor},
		{Field: "dept_cd", Value: identity.DeptCode},
		{Field: "chk_dt", Value: now.Format("200601")},
		{Field: "pg_key", Value: PageKey},
		{Field: "page_open_time", Value: ""},
		{Field: "page_open_time_on", Value: openStamp(now)},
	}

	doc, err := c.call(ctx, op, selectPath, params)
	if err != nil {
		return nil, err
	}

	dataset, ok := doc.Dataset(selectDataset)
	if !ok {
		return nil, fmt.Errorf("%s: %w: missing %s", op, domain.ErrUnexpectedResponse, selectDataset)
	}

	records, err := c.mapper.Records(dataset)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return records, nil
}

// Save submits one record for the identity.
func (c *Client) Save(ctx context.Context, identity domain.Identity, record domain.Record) error {
	const op = "save"

	monitor, err := c.monitorID(op)
	if err != nil {
		return err
	}
	if !identity.Complete() {
		return fmt.Errorf("%s: %w: identity incomplete", op, domain.ErrNotAuthenticated)
	}

	params := c.mapper.SaveParams(monitor, identity, record, c.clock.Now())
	if _, err := c.call(ctx, op, savePath, params); err != nil {
		return err
	}

	return nil
}
