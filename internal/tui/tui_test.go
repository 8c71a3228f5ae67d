package tui

import (
	"context"
	"encoding/base64"
	"errors"
	"testing"

	"github.com/MKhiriev/go-totp-vault/internal/client"
	"github.com/MKhiriev/go-totp-vault/internal/crypto"
	"github.com/MKhiriev/go-totp-vault/internal/logger"
	"github.com/MKhiriev/go-totp-vault/internal/mock"
	"github.com/MKhiriev/go-totp-vault/models"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type testFS struct {
	files   map[string][]byte
	written map[string][]byte
	copied  []string
}

func newTestDeps(t *testing.T) (*deps, *mock.MockServerAdapter, *testFS) {
	t.Helper()

	ctrl := gomock.NewController(t)
	server := mock.NewMockServerAdapter(ctrl)
	vault := client.NewVault(server, crypto.NewKeyDerivationService(), crypto.NewEnvelopeCipher(), logger.Nop())

	fs := &testFS{files: map[string][]byte{}, written: map[string][]byte{}}
	d := &deps{
		ctx:   context.Background(),
		vault: vault,
		readFile: func(name string) ([]byte, error) {
			data, ok := fs.files[name]
			if !ok {
				return nil, errors.New("no such file")
			}
			return data, nil
		},
		writeFile: func(name string, data []byte) error {
			fs.written[name] = data
			return nil
		},
		copy: func(text string) error {
			fs.copied = append(fs.copied, text)
			return nil
		},
		logger: logger.Nop(),
	}
	return d, server, fs
}

func testLoginResponse() models.LoginResponse {
	return models.LoginResponse{
		OK:          true,
		KDF:         string(models.KDFPBKDF2),
		Iterations:  1000,
		DKLen:       crypto.KeySize,
		Salt:        []byte("0123456789abcdef"),
		TOTPPeriod:  30,
		TOTPDigits:  6,
		LoginTicket: "ticket-1",
	}
}

// logIn completes both login steps for username directly on the vault.
func logIn(t *testing.T, d *deps, server *mock.MockServerAdapter, username string) {
	t.Helper()

	server.EXPECT().Login(gomock.Any(), models.Credentials{Username: username, Password: "pw"}).
		Return(testLoginResponse(), nil)
	server.EXPECT().VerifyTOTP(gomock.Any(), gomock.Any()).
		Return(models.VerifyTOTPResponse{OK: true, SessionToken: "tok"}, nil)
	server.EXPECT().Token().Return("tok").AnyTimes()

	_, err := d.vault.Login(d.ctx, username, "pw")
	require.NoError(t, err)
	_, err = d.vault.VerifyTOTP(d.ctx, "123456")
	require.NoError(t, err)
}

func testRegisterResponse(png []byte) models.RegisterResponse {
	return models.RegisterResponse{
		Issuer:        "INE5680-App",
		Account:       "alice",
		SecretBase32:  "JBSWY3DPEHPK3PXP",
		OTPAuthURI:    "otpauth://totp/INE5680-App:alice?secret=JBSWY3DPEHPK3PXP",
		QRCodeDataURI: "data:image/png;base64," + base64.StdEncoding.EncodeToString(png),
	}
}

func runCmd(t *testing.T, cmd tea.Cmd) tea.Msg {
	t.Helper()
	require.NotNil(t, cmd)
	return cmd()
}

func keyPress(k tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: k}
}

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}
