package cmd

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/emetic/internal/config"
	"github.com/bnema/emetic/internal/domain"
	"github.com/bnema/emetic/internal/version"
)

const (
	testUsername = "alice"
	testPassword = "hunter2"
)

var testNow = time.Date(2021, 10, 19, 9, 30, 0, 0, domain.Zone)

const selectHeader = "_RowType_\x1fDEPT_NM:string(50)\x1fUSER_NM:string(50)\x1fSTD_NO:string(20)\x1fCHK_DT:string(8)\x1fCHK_TM:string(5)\x1fTEMP:string(5)\x1fSYMPT_1:string(1)\x1fSYMPT_2:string(1)\x1fSYMPT_3:string(1)\x1fSYMPT_4:string(1)\x1fSYMPT_5:string(1)\x1fSYMPT_6:string(1)\x1fSPC_CTNT:string(200)\x1fGUBUN:string(2)"

// fakeZeus serves the four endpoints the CLI talks to.
type fakeZeus struct {
	mu      sync.Mutex
	logins  int
	selects int
	saves   []string
	expire  int
	rows    []string
}

func (f *fakeZeus) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	switch r.URL.Path {
	case "/sys/login/auth.do":
		f.logins++
		if err := r.ParseForm(); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		if r.PostForm.Get("login_id") != testUsername || r.PostForm.Get("login_pw") != testPassword {
			_, _ = fmt.Fprint(w, `{"error_msg":"invalid id or password"}`)
			return
		}
		http.SetCookie(w, &http.Cookie{Name: "WMONID", Value: "mon", Path: "/"})
		http.SetCookie(w, &http.Cookie{Name: "ZSESSIONID", Value: fmt.Sprintf("sess-%d", f.logins), Path: "/"})
		_, _ = w.Write([]byte(`%7B%22error_msg%22%3A%22%22%7D`))
	case "/sys/main/role.do":
		writeSSV(w,
			"SSV:utf-8",
			"ErrorCode:int=0",
			"Dataset:dsUserRole",
			"_RowType_\x1fBASE_DEPT_CD:string(10)\x1fMBR_NO:string(20)",
			"N\x1fD042\x1f20211234",
			"",
		)
	case "/amc/amcDailyTempRegE/select.do":
		f.selects++
		if f.expire > 0 {
			f.expire--
			writeSSV(w, "SSV:utf-8", "ErrorCode:string=4000", "ErrorMsg:string=session expired")
			return
		}
		records := append([]string{"SSV:utf-8", "ErrorCode:int=0", "Dataset:dsMain", selectHeader}, f.rows...)
		writeSSV(w, append(records, "")...)
	case "/amc/amcDailyTempRegE/save.do":
		body := new(bytes.Buffer)
		_, _ = body.ReadFrom(r.Body)
		f.saves = append(f.saves, body.String())
		writeSSV(w, "SSV:utf-8", "ErrorCode:int=0")
	default:
		http.NotFound(w, r)
	}
}

type zeusCounts struct {
	logins  int
	selects int
	saves   []string
}

func (f *fakeZeus) counts() zeusCounts {
	f.mu.Lock()
	defer f.mu.Unlock()
	return zeusCounts{logins: f.logins, selects: f.selects, saves: append([]string(nil), f.saves...)}
}

func (f *fakeZeus) configure(expire int, rows ...string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.expire = expire
	f.rows = append(f.rows, rows...)
}

func writeSSV(w http.ResponseWriter, records ...string) {
	w.Header().Set("Content-Type", "text/plain;charset=UTF-8")
	_, _ = fmt.Fprint(w, strings.Join(records, "\x1e"))
}

func newFakeZeus(t *testing.T, rows ...string) (*fakeZeus, string) {
	t.Helper()

	zeus := &fakeZeus{}
	zeus.configure(0, rows...)
	server := httptest.NewServer(zeus)
	t.Cleanup(server.Close)
	return zeus, server.URL
}

func writeConfigFixture(t *testing.T, home, baseURL, extra string) string {
	t.Helper()

	path := filepath.Join(home, "config.json")
	content := fmt.Sprintf(`{
    "username": %q,
    "b64_password": %q,
    "cache_path": %q,
    "base_url": %q%s
}`, testUsername, base64.StdEncoding.EncodeToString([]byte(testPassword)), filepath.Join(home, "cache.toml"), baseURL, extra)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func executeCLI(t *testing.T, home string, args ...string) (string, string, error) {
	t.Helper()
	return executeCLIWithInput(t, home, "", args...)
}

func executeCLIWithInput(t *testing.T, home, stdin string, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv("HOME", home)

	app, err := wireApp()
	require.NoError(t, err)
	app.now = func() time.Time { return testNow }

	root := buildRootCmd(app, nil)
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	root.SetIn(strings.NewReader(stdin))
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.SetArgs(args)

	err = root.Execute()
	return stdout.String(), stderr.String(), err
}

func TestNoCommandFails(t *testing.T) {
	_, _, err := executeCLI(t, t.TempDir())
	require.Error(t, err)
	assert.ErrorIs(t, err, errNoCommand)
	assert.Equal(t, ExitFailure, ExitCode(err))
}

func TestUnknownCommandExitCode(t *testing.T) {
	_, _, err := executeCLI(t, t.TempDir(), "limit")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown command \"limit\"")
	assert.Equal(t, ExitUnknownCommand, ExitCode(err))
}

func TestVersionCommand(t *testing.T) {
	stdout, _, err := executeCLI(t, t.TempDir(), "version")
	require.NoError(t, err)
	assert.Equal(t, version.Version+"\n", stdout)
}

func TestHelpListsCommands(t *testing.T) {
	stdout, _, err := executeCLI(t, t.TempDir(), "help")
	require.NoError(t, err)
	for _, name := range []string{"save", "select", "check", "update", "config", "version"} {
		assert.Contains(t, stdout, name)
	}
	assert.Contains(t, stdout, "errors are still reported on stderr")
	assert.Contains(t, stdout, "0 10 * * * sleep ${RANDOM:0:2}m; emetic update")
}

func TestConfigCommandPrintsTemplateToStdout(t *testing.T) {
	stdout, _, err := executeCLI(t, t.TempDir(), "config", "-")
	require.NoError(t, err)
	assert.Contains(t, stdout, `"username": null`)
	assert.Contains(t, stdout, `"temperature": 36.5`)
}

func TestConfigCommandPrintsDefaultPathForEmptyArgument(t *testing.T) {
	home := t.TempDir()

	stdout, _, err := executeCLI(t, home, "config", "")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, config.DefaultFileName)+"\n", stdout)
}

func TestConfigCommandWritesDefaultPath(t *testing.T) {
	home := t.TempDir()

	_, _, err := executeCLI(t, home, "config")
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(home, config.DefaultFileName))
	require.NoError(t, err)
	assert.Contains(t, string(data), `"b64_password": null`)
}

func TestConfigCommandWriteFailureExitCode(t *testing.T) {
	home := t.TempDir()
	blocker := filepath.Join(home, "file")
	require.NoError(t, os.WriteFile(blocker, nil, 0o600))

	_, _, err := executeCLI(t, home, "config", filepath.Join(blocker, "cfg"))
	require.Error(t, err)
	assert.Equal(t, ExitConfigWrite, ExitCode(err))
}

func TestMissingConfigExitCode(t *testing.T) {
	home := t.TempDir()

	_, _, err := executeCLI(t, home, "check")
	require.Error(t, err)
	assert.Equal(t, ExitConfig, ExitCode(err))
}

func TestInvalidConfigExitCode(t *testing.T) {
	home := t.TempDir()

	_, _, err := executeCLIWithInput(t, home, `{"username":"alice","b64_password":"aGk=","colour":"red"}`, "check", "-")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unrecognized config entry: 'colour'")
	assert.Equal(t, ExitConfig, ExitCode(err))
}

func TestLoginFailureExitCode(t *testing.T) {
	zeus, baseURL := newFakeZeus(t)
	home := t.TempDir()
	path := filepath.Join(home, "config.json")
	content := fmt.Sprintf(`{"username":"alice","b64_password":%q,"base_url":%q,"cache_path":""}`,
		base64.StdEncoding.EncodeToString([]byte("wrong")), baseURL)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	stdout, _, err := executeCLI(t, home, "check", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid id or password")
	assert.Equal(t, ExitLogin, ExitCode(err))
	assert.Contains(t, stdout, "try logging in... failed\n")
	assert.Equal(t, 1, zeus.counts().logins)
}

func TestSelectPrintsRecordsAndPersistsCache(t *testing.T) {
	zeus, baseURL := newFakeZeus(t,
		"N\x1fPhysics\x1fAlice\x1f20211234\x1f20211018\x1f18:40\x1f36.4\x1fN\x1fN\x1fN\x1fN\x1fN\x1fN\x1f\x03\x1fAA",
		"N\x1fPhysics\x1fAlice\x1f20211234\x1f20211019\x1f08:05\x1f37.2\x1fY\x1fN\x1fN\x1fN\x1fN\x1fN\x1fsore\x1fAA",
	)
	home := t.TempDir()
	path := writeConfigFixture(t, home, baseURL, `, "verbose": false`)

	stdout, _, err := executeCLI(t, home, "select", path)
	require.NoError(t, err)

	assert.Equal(t, "2021-10-18\t18:40\t36.4\t______\t\n2021-10-19\t08:05\t37.2\tO_____\tsore\n", stdout)
	assert.Equal(t, 1, zeus.counts().logins)

	cache, err := os.ReadFile(filepath.Join(home, "cache.toml"))
	require.NoError(t, err)
	assert.Contains(t, string(cache), "WMONID")
	assert.Contains(t, string(cache), "D042")

	_, _, err = executeCLI(t, home, "select", path)
	require.NoError(t, err)
	assert.Equal(t, 1, zeus.counts().logins, "cached session is reused")
	assert.Equal(t, 2, zeus.counts().selects)
}

func TestCheckReportsProgress(t *testing.T) {
	_, baseURL := newFakeZeus(t,
		"N\x1fPhysics\x1fAlice\x1f20211234\x1f20211019\x1f08:05\x1f36.5\x1fN\x1fN\x1fN\x1fN\x1fN\x1fN\x1f\x03\x1fAA",
	)
	home := t.TempDir()
	path := writeConfigFixture(t, home, baseURL, "")

	stdout, _, err := executeCLI(t, home, "check", path)
	require.NoError(t, err)
	assert.Equal(t, strings.Join([]string{
		"try logging in... success",
		"getting role data... success",
		"loading temperature data... success",
		"temperature already recorded",
		"",
	}, "\n"), stdout)
}

func TestUpdateSavesOnlyWhenNothingRecorded(t *testing.T) {
	zeus, baseURL := newFakeZeus(t,
		"N\x1fPhysics\x1fAlice\x1f20211234\x1f20211018\x1f18:40\x1f36.4\x1fN\x1fN\x1fN\x1fN\x1fN\x1fN\x1f\x03\x1fAA",
	)
	home := t.TempDir()
	path := writeConfigFixture(t, home, baseURL, `, "temperature": 36.9, "cough": true`)

	stdout, _, err := executeCLI(t, home, "update", path)
	require.NoError(t, err)
	assert.Contains(t, stdout, "no record yet")
	assert.Contains(t, stdout, "uploading temperature data...")
	require.Len(t, zeus.counts().saves, 1)
	assert.Contains(t, zeus.counts().saves[0], "temp=36.9")
	assert.Contains(t, zeus.counts().saves[0], "sympt_1=Y")
	assert.Contains(t, zeus.counts().saves[0], "chk_dt=2021-10-19")

	zeus.configure(0,
		"N\x1fPhysics\x1fAlice\x1f20211234\x1f20211019\x1f09:30\x1f36.9\x1fY\x1fN\x1fN\x1fN\x1fN\x1fN\x1f\x03\x1fAA",
	)
	stdout, _, err = executeCLI(t, home, "update", path)
	require.NoError(t, err)
	assert.Contains(t, stdout, "temperature already recorded")
	assert.Len(t, zeus.counts().saves, 1)
}

func TestSaveUploadsUnconditionally(t *testing.T) {
	zeus, baseURL := newFakeZeus(t)
	home := t.TempDir()
	path := writeConfigFixture(t, home, baseURL, `, "note": "fine"`)

	for i := 0; i < 2; i++ {
		_, _, err := executeCLI(t, home, "save", path)
		require.NoError(t, err)
	}
	require.Len(t, zeus.counts().saves, 2)
	assert.Contains(t, zeus.counts().saves[1], "spc_ctnt=fine")
	assert.Equal(t, 0, zeus.counts().selects)
}

func TestExpiredSessionIsRenewedOnce(t *testing.T) {
	zeus, baseURL := newFakeZeus(t)
	zeus.configure(1)
	home := t.TempDir()
	path := writeConfigFixture(t, home, baseURL, "")

	stdout, _, err := executeCLI(t, home, "check", path)
	require.NoError(t, err)
	assert.Contains(t, stdout, "loading temperature data... login cookie rejected\n")
	assert.Contains(t, stdout, "no record yet")
	assert.Equal(t, 2, zeus.counts().logins)
	assert.Equal(t, 2, zeus.counts().selects)

	cache, err := os.ReadFile(filepath.Join(home, "cache.toml"))
	require.NoError(t, err)
	assert.Contains(t, string(cache), "sess-2")
}

func TestExpiredSessionGivesUpAfterRetries(t *testing.T) {
	zeus, baseURL := newFakeZeus(t)
	zeus.configure(100)
	home := t.TempDir()
	path := writeConfigFixture(t, home, baseURL, `, "verbose": false`)

	_, _, err := executeCLI(t, home, "select", path)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrAuthRetryExhausted))
	assert.Equal(t, ExitFailure, ExitCode(err))
	assert.Equal(t, 2, zeus.counts().selects)
	assert.Equal(t, 3, zeus.counts().logins)
}

func TestSpinnerFlagDoesNotChangeOutput(t *testing.T) {
	_, baseURL := newFakeZeus(t)
	home := t.TempDir()
	path := writeConfigFixture(t, home, baseURL, `, "verbose": false`)

	stdout, _, err := executeCLI(t, home, "select", "--spinner", path)
	require.NoError(t, err)
	assert.Empty(t, stdout)
}
