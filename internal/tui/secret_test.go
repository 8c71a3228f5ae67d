package tui

import (
	"errors"
	"testing"

	"github.com/MKhiriev/go-totp-vault/internal/client"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
)

func testRegisterResult() RegisterResult {
	return RegisterResult{
		Username: "alice",
		Registration: client.Registration{
			Issuer:       "INE5680-App",
			Account:      "alice",
			SecretBase32: "JBSWY3DPEHPK3PXP",
			OTPAuthURI:   "otpauth://totp/INE5680-App:alice?secret=JBSWY3DPEHPK3PXP",
		},
		QRPath: "qrcode-alice.png",
		Copied: true,
	}
}

func TestSecretModel_ShowsProvisioningData(t *testing.T) {
	d, _, _ := newTestDeps(t)
	m := NewSecretModel(d)

	m.Update(testRegisterResult())
	view := m.View()

	assert.Contains(t, view, "JBSWY3DPEHPK3PXP")
	assert.Contains(t, view, "48656c6c6f21deadbeef")
	assert.Contains(t, view, "otpauth://totp/INE5680-App:alice")
	assert.Contains(t, view, "qrcode-alice.png")
	assert.Contains(t, view, "secret copied to clipboard")
}

func TestSecretModel_QRCodeNotSaved(t *testing.T) {
	d, _, _ := newTestDeps(t)
	m := NewSecretModel(d)

	result := testRegisterResult()
	result.QRPath = ""
	result.QRErr = errors.New("read-only file system")
	m.Update(result)

	assert.Contains(t, m.View(), "not saved: read-only file system")
}

func TestSecretModel_CopyAgainAndLeave(t *testing.T) {
	d, _, fs := newTestDeps(t)
	m := NewSecretModel(d)

	result := testRegisterResult()
	result.Copied = false
	m.Update(result)

	_, cmd := m.Update(runeKey('c'))
	msg := runCmd(t, cmd)
	assert.Equal(t, []string{"JBSWY3DPEHPK3PXP"}, fs.copied)

	m.Update(msg)
	assert.Equal(t, "secret copied to clipboard", m.status)

	_, cmd = m.Update(keyPress(tea.KeyEnter))
	nav, ok := runCmd(t, cmd).(NavigateTo)
	assert.True(t, ok)
	assert.Equal(t, pageMenu, nav.Page)
	assert.Equal(t, StatusNotice{Text: "registered alice, log in with your authenticator code"}, nav.Payload)
}

func TestSecretModel_ClipboardUnavailable(t *testing.T) {
	d, _, _ := newTestDeps(t)
	d.copy = func(string) error { return errors.New("no clipboard utility") }
	m := NewSecretModel(d)
	m.Update(testRegisterResult())

	_, cmd := m.Update(runeKey('c'))
	m.Update(runCmd(t, cmd))

	assert.Contains(t, m.errMsg, "no clipboard utility")
}

func TestSecretHex(t *testing.T) {
	assert.Equal(t, "48656c6c6f21deadbeef", secretHex("JBSWY3DPEHPK3PXP"))
	assert.Equal(t, "", secretHex("not base32!"))
}
