package cli

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/yhdfc-next/internal/client"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeEnvelope(w http.ResponseWriter, code int, msg string, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"status_code": code,
		"msg":         msg,
		"data":        data,
	})
}

// run 执行一次命令，返回标准输出
func run(t *testing.T, server, session string, args ...string) (string, error) {
	t.Helper()
	return runWithInput(t, "", server, session, args...)
}

// runWithInput 同 run，stdin 读取 input
func runWithInput(t *testing.T, input, server, session string, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCommand()
	var out bytes.Buffer
	cmd.SetIn(strings.NewReader(input))
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{"--server", server, "--session", session, "--style", "notty", "--timeout", "5s"}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func newAdminServer(t *testing.T) (*httptest.Server, *sync.Map) {
	t.Helper()
	calls := &sync.Map{}
	authorized := func(r *http.Request) bool {
		return r.Header.Get("Authorization") == "Bearer tok-cli"
	}
	mux := http.NewServeMux()
	mux.HandleFunc("/api/admin/login", func(w http.ResponseWriter, r *http.Request) {
		_ = r.ParseForm()
		if r.PostForm.Get("username") != "admin" || r.PostForm.Get("password") != "secret" {
			writeEnvelope(w, 401, "invalid credentials", nil)
			return
		}
		writeEnvelope(w, 0, "success", map[string]interface{}{
			"access_token": "tok-cli",
			"token_type":   "Bearer",
			"expires_at":   time.Now().Add(time.Hour).Format(time.RFC3339),
			"admin":        map[string]interface{}{"id": 1, "username": "admin", "email": "admin@yhdfc.com", "full_name": "Site Admin"},
		})
	})
	mux.HandleFunc("/api/admin/me", func(w http.ResponseWriter, r *http.Request) {
		if !authorized(r) {
			writeEnvelope(w, 401, "unauthorized", nil)
			return
		}
		writeEnvelope(w, 0, "success", map[string]interface{}{
			"admin": map[string]interface{}{"id": 1, "username": "admin", "email": "admin@yhdfc.com", "full_name": "Site Admin"},
			"roles": []string{"editor"},
		})
	})
	mux.HandleFunc("/api/admin/posts/7", func(w http.ResponseWriter, r *http.Request) {
		calls.Store(r.Method+" "+r.URL.Path, true)
		writeEnvelope(w, 0, "success", map[string]interface{}{
			"id": 7, "title": "Evidence Handling", "slug": "evidence-handling",
			"content": "<p>Chain of <strong>custody</strong> matters.</p>", "tags": "evidence",
		})
	})
	// 101 条咨询：#3 在第一页，#200 落在 limit=100 时的第二页
	inquiries := []map[string]interface{}{
		{"id": 3, "name": "Kim", "email": "kim@example.com", "subject": "Phone recovery", "message": "Locked iPhone", "status": "new", "urgency_level": "urgent"},
	}
	for id := 101; id <= 200; id++ {
		inquiries = append(inquiries, map[string]interface{}{
			"id": id, "name": "Park", "email": "park@example.com", "subject": "Audit " + strconv.Itoa(id), "message": "Log review", "status": "read", "urgency_level": "normal",
		})
	}
	mux.HandleFunc("/api/admin/inquiries", func(w http.ResponseWriter, r *http.Request) {
		page, _ := strconv.Atoi(r.URL.Query().Get("page"))
		limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
		if page < 1 {
			page = 1
		}
		if limit < 1 {
			limit = 20
		}
		start := min((page-1)*limit, len(inquiries))
		end := min(start+limit, len(inquiries))
		writeEnvelope(w, 0, "success", map[string]interface{}{
			"inquiries": inquiries[start:end],
			"total":     len(inquiries), "page": page, "limit": limit,
			"total_pages": (len(inquiries) + limit - 1) / limit,
		})
	})
	mux.HandleFunc("/api/admin/inquiries/", func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.Atoi(strings.TrimPrefix(r.URL.Path, "/api/admin/inquiries/"))
		if err != nil {
			writeEnvelope(w, 404, "not found", nil)
			return
		}
		calls.Store(r.Method+" "+r.URL.Path, true)
		if r.Method == http.MethodDelete {
			writeEnvelope(w, 0, "success", map[string]bool{"deleted": true})
			return
		}
		var body map[string]string
		_ = json.NewDecoder(r.Body).Decode(&body)
		writeEnvelope(w, 0, "success", map[string]interface{}{
			"id": id, "name": "Kim", "email": "kim@example.com", "subject": "Phone recovery", "message": "Locked iPhone",
			"status": body["status"], "urgency_level": "urgent", "is_read": true,
		})
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server, calls
}

func TestLoginPersistsSessionForLaterCommands(t *testing.T) {
	server, _ := newAdminServer(t)
	session := filepath.Join(t.TempDir(), "session.yml")

	out, err := run(t, server.URL, session, "login", "-u", "admin", "-p", "secret")
	require.NoError(t, err)
	assert.Contains(t, out, "logged in as admin")

	out, err = run(t, server.URL, session, "whoami")
	require.NoError(t, err)
	assert.Contains(t, out, "admin")
	assert.Contains(t, out, "roles: editor")

	_, ok := client.NewSession(client.NewFileStorage(session)).User()
	assert.True(t, ok)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	server, _ := newAdminServer(t)
	session := filepath.Join(t.TempDir(), "session.yml")

	_, err := run(t, server.URL, session, "login", "-u", "admin", "-p", "wrong")
	var apiErr *client.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 401, apiErr.BusinessCode)
	assert.False(t, client.NewSession(client.NewFileStorage(session)).IsAuthenticated())
}

func TestAdminCommandsRequireLogin(t *testing.T) {
	server, _ := newAdminServer(t)
	_, err := run(t, server.URL, filepath.Join(t.TempDir(), "session.yml"), "posts", "list")
	require.ErrorIs(t, err, client.ErrNotAuthenticated)
	assert.Contains(t, describeError(err), "yhctl login")
}

func TestPostsShowRendersMarkdown(t *testing.T) {
	server, _ := newAdminServer(t)
	session := filepath.Join(t.TempDir(), "session.yml")
	_, err := run(t, server.URL, session, "login", "-u", "admin", "-p", "secret")
	require.NoError(t, err)

	out, err := run(t, server.URL, session, "posts", "show", "7")
	require.NoError(t, err)
	assert.Contains(t, out, "Evidence Handling")
	assert.Contains(t, out, "custody")
	assert.NotContains(t, out, "<strong>")
	assert.Contains(t, out, "tags: evidence")
}

func TestInquiriesOpenMarksNewAsRead(t *testing.T) {
	server, calls := newAdminServer(t)
	session := filepath.Join(t.TempDir(), "session.yml")
	_, err := run(t, server.URL, session, "login", "-u", "admin", "-p", "secret")
	require.NoError(t, err)

	out, err := run(t, server.URL, session, "inquiries", "open", "3")
	require.NoError(t, err)
	_, marked := calls.Load(http.MethodPut + " /api/admin/inquiries/3")
	assert.True(t, marked)
	assert.Contains(t, out, "Phone recovery")
	assert.Contains(t, out, "read")
	assert.Contains(t, out, "Locked iPhone")
}

func TestInquiriesStatusValidatesLocally(t *testing.T) {
	server, calls := newAdminServer(t)
	session := filepath.Join(t.TempDir(), "session.yml")
	_, err := run(t, server.URL, session, "login", "-u", "admin", "-p", "secret")
	require.NoError(t, err)

	_, err = run(t, server.URL, session, "inquiries", "status", "3", "archived")
	require.Error(t, err)
	_, called := calls.Load(http.MethodPut + " /api/admin/inquiries/3")
	assert.False(t, called)
}

func TestSlugPreviewWorksOffline(t *testing.T) {
	session := filepath.Join(t.TempDir(), "session.yml")
	out, err := run(t, "http://127.0.0.1:1", session, "slug", "iOS 17 Forensics:", "A Deep Dive",
		"--category", "digital-forensic", "--subcategory", "digital-crime")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "ios-17-forensics-a-deep-dive", lines[0])
	assert.Equal(t, "/digital-forensic/digital-crime/ios-17-forensics-a-deep-dive", lines[1])
}

func TestDescribeSessionExpired(t *testing.T) {
	msg := describeError(&client.SessionExpiredError{Redirect: "/admin/login"})
	assert.Contains(t, msg, "session expired")
	assert.Contains(t, msg, "/admin/login")
}

func loginForTest(t *testing.T, server string) string {
	t.Helper()
	session := filepath.Join(t.TempDir(), "session.yml")
	_, err := run(t, server, session, "login", "-u", "admin", "-p", "secret")
	require.NoError(t, err)
	return session
}

func TestDeleteRequiresConfirmation(t *testing.T) {
	cases := []struct {
		name string
		args []string
		call string
	}{
		{"inquiry", []string{"inquiries", "delete", "3"}, http.MethodDelete + " /api/admin/inquiries/3"},
		{"post", []string{"posts", "delete", "7"}, http.MethodDelete + " /api/admin/posts/7"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			server, calls := newAdminServer(t)
			session := loginForTest(t, server.URL)

			for _, input := range []string{"", "n\n", "nope\n"} {
				out, err := runWithInput(t, input, server.URL, session, tc.args...)
				require.NoError(t, err)
				assert.Contains(t, out, "[y/N]")
				assert.Contains(t, out, "aborted")
				_, called := calls.Load(tc.call)
				require.False(t, called, "input %q", input)
			}

			out, err := runWithInput(t, "YES\n", server.URL, session, tc.args...)
			require.NoError(t, err)
			assert.Contains(t, out, "deleted")
			_, called := calls.Load(tc.call)
			assert.True(t, called)
		})
	}
}

func TestDeleteYesFlagSkipsPrompt(t *testing.T) {
	server, calls := newAdminServer(t)
	session := loginForTest(t, server.URL)

	out, err := run(t, server.URL, session, "posts", "delete", "7", "-y")
	require.NoError(t, err)
	assert.NotContains(t, out, "[y/N]")
	_, called := calls.Load(http.MethodDelete + " /api/admin/posts/7")
	assert.True(t, called)
}

func TestInquiriesStatusFindsLaterPages(t *testing.T) {
	server, calls := newAdminServer(t)
	session := loginForTest(t, server.URL)

	out, err := run(t, server.URL, session, "inquiries", "status", "200", "closed")
	require.NoError(t, err)
	assert.Contains(t, out, "#200")
	assert.Contains(t, out, "closed")
	_, called := calls.Load(http.MethodPut + " /api/admin/inquiries/200")
	assert.True(t, called)

	_, err = run(t, server.URL, session, "inquiries", "status", "999", "closed")
	require.ErrorIs(t, err, client.ErrInquiryNotLoaded)
}
