package web_test

import (
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRegister(t *testing.T) {
	ts := newWebTestServer(t)

	form := url.Values{
		"username": {"alice"},
		"password": {"secret123"},
	}
	rr := ts.post("/register", form)

	// Registration sends the user to the login page, not into a session
	assert.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "/login/", rr.Header().Get("Location"))
	assert.False(t, ts.cookies.hasSession())

	// The login page shows the flash message
	rr = ts.followRedirect(rr)
	assert.Equal(t, http.StatusOK, rr.Code)
	doc := parseHTML(rr.Body)
	assertContainsText(t, doc, ".flash", "Account created")
}

func TestRegisterDuplicateUsername(t *testing.T) {
	ts := newWebTestServer(t)

	ts.register("alice", "secret123")

	form := url.Values{
		"username": {"alice"},
		"password": {"different456"},
	}
	rr := ts.post("/register", form)

	// Re-rendered with an error, not redirected
	assert.Equal(t, http.StatusOK, rr.Code)
	doc := parseHTML(rr.Body)
	assertContainsText(t, doc, ".error", "already taken")
	assert.False(t, ts.cookies.hasSession())
}

func TestRegisterEmptyFields(t *testing.T) {
	ts := newWebTestServer(t)

	rr := ts.post("/register", url.Values{"username": {""}, "password": {""}})

	assert.Equal(t, http.StatusOK, rr.Code)
	doc := parseHTML(rr.Body)
	assertContainsElement(t, doc, ".error")
	assert.False(t, ts.cookies.hasSession())
}

func TestLogin(t *testing.T) {
	ts := newWebTestServer(t)
	ts.register("bob", "secret123")

	form := url.Values{"username": {"bob"}, "password": {"secret123"}}
	rr := ts.post("/login/", form)

	assert.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "/", rr.Header().Get("Location"))
	assert.True(t, ts.cookies.hasSession())

	rr = ts.followRedirect(rr)
	assert.Equal(t, http.StatusOK, rr.Code)
	doc := parseHTML(rr.Body)
	assertContainsText(t, doc, "nav", "bob")
}

func TestLoginWrongPassword(t *testing.T) {
	ts := newWebTestServer(t)
	ts.register("bob", "secret123")

	rr := ts.post("/login/", url.Values{"username": {"bob"}, "password": {"wrong"}})

	// Form re-rendered without saying what was wrong
	assert.Equal(t, http.StatusOK, rr.Code)
	doc := parseHTML(rr.Body)
	assertContainsText(t, doc, ".error", "Invalid username or password")
	assert.False(t, ts.cookies.hasSession())
}

func TestLoginUnknownUser(t *testing.T) {
	ts := newWebTestServer(t)

	rr := ts.post("/login/", url.Values{"username": {"nobody"}, "password": {"secret123"}})

	// Indistinguishable from a wrong password
	assert.Equal(t, http.StatusOK, rr.Code)
	doc := parseHTML(rr.Body)
	assertContainsText(t, doc, ".error", "Invalid username or password")
	assert.False(t, ts.cookies.hasSession())
}

func TestProtectedPage(t *testing.T) {
	ts := newWebTestServer(t)
	ts.registerAndLogin("alice", "secret123")

	rr := ts.get("/protected")

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "Protected area!  Logged in as: alice", rr.Body.String())
}

func TestProtectedRoutesRedirectToLogin(t *testing.T) {
	ts := newWebTestServer(t)

	for _, path := range []string{"/", "/protected", "/card/1", "/form_create", "/logout"} {
		rr := ts.get(path)
		assert.Equal(t, http.StatusSeeOther, rr.Code, "path %s", path)
		assert.Equal(t, "/login/", rr.Header().Get("Location"), "path %s", path)
	}
}

func TestLogout(t *testing.T) {
	ts := newWebTestServer(t)
	ts.registerAndLogin("alice", "secret123")

	rr := ts.get("/logout")

	assert.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "/login/", rr.Header().Get("Location"))
	assert.False(t, ts.cookies.hasSession())

	// The old session no longer grants access
	rr = ts.get("/protected")
	assert.Equal(t, http.StatusSeeOther, rr.Code)
}

func TestStaleTokenAfterLogout(t *testing.T) {
	ts := newWebTestServer(t)
	ts.registerAndLogin("alice", "secret123")

	// Keep a copy of the session cookie, then log out
	token := ts.cookies.cookies["session"].Value
	ts.get("/logout")

	// Replaying the old token yields the login redirect
	ts.cookies.cookies["session"] = &http.Cookie{Name: "session", Value: token}
	rr := ts.get("/protected")
	assert.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "/login/", rr.Header().Get("Location"))
}

func TestLoginPageRedirectsWhenAuthenticated(t *testing.T) {
	ts := newWebTestServer(t)
	ts.registerAndLogin("alice", "secret123")

	rr := ts.get("/login/")
	assert.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "/", rr.Header().Get("Location"))

	rr = ts.get("/register")
	assert.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "/", rr.Header().Get("Location"))
}

func TestHomePageIsPublic(t *testing.T) {
	ts := newWebTestServer(t)

	rr := ts.get("/home")
	assert.Equal(t, http.StatusOK, rr.Code)

	doc := parseHTML(rr.Body)
	assertContainsText(t, doc, "h1", "Diary")
	assertContainsElement(t, doc, "a[href='/login/']")
}
