package tui

import (
	"testing"

	"github.com/MKhiriev/go-totp-vault/internal/adapter"
	"github.com/MKhiriev/go-totp-vault/models"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// passwordStep runs the login page for alice and returns the prompt it hands
// to the code page.
func passwordStep(t *testing.T, d *deps) TOTPPrompt {
	t.Helper()
	m := NewLoginModel(d)

	m.form.inputs[loginUsername].SetValue("alice")
	m.form.inputs[loginPassword].SetValue("pw")
	_, cmd := m.Update(keyPress(tea.KeyEnter))

	_, cmd = m.Update(runCmd(t, cmd))
	nav, ok := runCmd(t, cmd).(NavigateTo)
	require.True(t, ok)
	require.Equal(t, pageTOTP, nav.Page)

	prompt, ok := nav.Payload.(TOTPPrompt)
	require.True(t, ok)
	return prompt
}

func TestLoginFlow_PasswordThenCode(t *testing.T) {
	d, server, _ := newTestDeps(t)

	server.EXPECT().Login(gomock.Any(), models.Credentials{Username: "alice", Password: "pw"}).
		Return(testLoginResponse(), nil)
	server.EXPECT().VerifyTOTP(gomock.Any(), models.VerifyTOTPRequest{
		Username: "alice", Code: "123456", LoginTicket: "ticket-1",
	}).Return(models.VerifyTOTPResponse{OK: true, SessionToken: "tok"}, nil)

	prompt := passwordStep(t, d)
	assert.Equal(t, TOTPPrompt{Username: "alice", Digits: 6, Period: 30}, prompt)
	assert.Empty(t, d.vault.Username(), "not logged in before the code step")

	m := NewTOTPModel(d)
	m.Update(prompt)
	assert.Contains(t, m.View(), "6-digit code")

	m.form.inputs[0].SetValue("123456")
	_, cmd := m.Update(keyPress(tea.KeyEnter))
	_, cmd = m.Update(runCmd(t, cmd))

	nav, ok := runCmd(t, cmd).(NavigateTo)
	require.True(t, ok)
	assert.Equal(t, pageMenu, nav.Page)
	assert.Equal(t, StatusNotice{Text: "logged in as alice"}, nav.Payload)
	assert.Equal(t, "alice", d.vault.Username())
}

func TestLoginFlow_RejectedCodeCanRetry(t *testing.T) {
	d, server, _ := newTestDeps(t)

	server.EXPECT().Login(gomock.Any(), gomock.Any()).Return(testLoginResponse(), nil)
	gomock.InOrder(
		server.EXPECT().VerifyTOTP(gomock.Any(), models.VerifyTOTPRequest{
			Username: "alice", Code: "000000", LoginTicket: "ticket-1",
		}).Return(models.VerifyTOTPResponse{}, adapter.ErrUnauthorized),
		server.EXPECT().VerifyTOTP(gomock.Any(), models.VerifyTOTPRequest{
			Username: "alice", Code: "123456", LoginTicket: "ticket-1",
		}).Return(models.VerifyTOTPResponse{OK: true, SessionToken: "tok"}, nil),
	)

	m := NewTOTPModel(d)
	m.Update(passwordStep(t, d))

	m.form.inputs[0].SetValue("000000")
	_, cmd := m.Update(keyPress(tea.KeyEnter))
	_, next := m.Update(runCmd(t, cmd))
	assert.Nil(t, next)
	assert.Contains(t, m.form.errMsg, "code rejected")
	assert.Empty(t, m.form.value(0))
	assert.Empty(t, d.vault.Username())

	m.form.inputs[0].SetValue("123456")
	_, cmd = m.Update(keyPress(tea.KeyEnter))
	m.Update(runCmd(t, cmd))
	assert.Equal(t, "alice", d.vault.Username())
}

func TestLoginModel_WrongPassword(t *testing.T) {
	d, server, _ := newTestDeps(t)
	m := NewLoginModel(d)

	server.EXPECT().Login(gomock.Any(), gomock.Any()).Return(models.LoginResponse{}, adapter.ErrUnauthorized)

	m.form.inputs[loginUsername].SetValue("alice")
	m.form.inputs[loginPassword].SetValue("bad")
	_, cmd := m.Update(keyPress(tea.KeyEnter))
	_, next := m.Update(runCmd(t, cmd))

	assert.Nil(t, next)
	assert.Equal(t, "authentication failed", m.form.errMsg)
}

func TestLoginModel_RequiresBothFields(t *testing.T) {
	d, _, _ := newTestDeps(t)
	m := NewLoginModel(d)

	m.form.inputs[loginUsername].SetValue("alice")
	_, cmd := m.Update(keyPress(tea.KeyEnter))

	assert.Nil(t, cmd)
	assert.Equal(t, "username and password are required", m.form.errMsg)
}

func TestTOTPModel_EmptyCodeAndCancel(t *testing.T) {
	d, _, _ := newTestDeps(t)
	m := NewTOTPModel(d)
	m.Update(TOTPPrompt{Username: "alice", Digits: 6, Period: 30})

	_, cmd := m.Update(keyPress(tea.KeyEnter))
	assert.Nil(t, cmd)
	assert.Equal(t, "code is required", m.form.errMsg)

	_, cmd = m.Update(keyPress(tea.KeyEsc))
	assert.Equal(t, NavigateTo{Page: pageMenu}, runCmd(t, cmd))
}

func TestTOTPModel_NoPendingLogin(t *testing.T) {
	d, _, _ := newTestDeps(t)
	m := NewTOTPModel(d)

	m.form.inputs[0].SetValue("123456")
	_, cmd := m.Update(keyPress(tea.KeyEnter))
	m.Update(runCmd(t, cmd))

	assert.Equal(t, "log in with username and password first", m.form.errMsg)
}
