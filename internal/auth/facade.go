// Package auth is the single entry point the UI layer calls for account
// creation, motto verification, login, password reset and logout. Every
// operation returns a result with a user-facing message; internal errors
// are logged and collapsed into generic failures so details never leak to
// the screen.
package auth

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/youiz/dri-portal/internal/codegen"
	"github.com/youiz/dri-portal/internal/common"
	"github.com/youiz/dri-portal/internal/localstore"
	"github.com/youiz/dri-portal/internal/logging"
	"github.com/youiz/dri-portal/internal/models"
	"github.com/youiz/dri-portal/internal/repositories/codes"
	"github.com/youiz/dri-portal/internal/repositories/users"
	"github.com/youiz/dri-portal/internal/timex"
)

// User-facing messages, kept in the portal's language.
const (
	MsgNickTaken       = "Nick já existe"
	MsgAccountCreated  = "Conta criada! Coloque o código na sua missão do Habbo e verifique."
	MsgCodeInvalid     = "Código inválido ou expirado"
	MsgCodeNotInMotto  = "Código não encontrado na missão"
	MsgAccountVerified = "Conta verificada com sucesso!"
	MsgBadCredentials  = "Nick ou senha inválidos"
	MsgNotVerified     = "Conta não verificada"
	MsgBlocked         = "Usuário bloqueado"
	MsgOnLeave         = "Usuário em licença"
	MsgReserve         = "Usuário na reserva"
	MsgNotActive       = "Usuário não está ativo"
	MsgPasswordReset   = "Senha redefinida com sucesso!"
	MsgResetRequested  = "Código de redefinição gerado! Coloque-o na sua missão do Habbo."

	msgCreateFailed = "Erro ao criar conta"
	msgVerifyFailed = "Erro ao verificar conta"
	msgLoginFailed  = "Erro no login"
	msgResetFailed  = "Erro ao redefinir senha"
)

// Result is the outcome of a facade operation. Message is safe to show
// to the user as-is.
type Result struct {
	Success bool
	Message string
}

// CreateAccountResult carries the verification code the user must publish
// in their Habbo motto before the account can be activated.
type CreateAccountResult struct {
	Result
	Nick   string
	Codigo string
}

// LoginResult reports a successful authentication, or why it was refused.
// RevalidationRequired is set when a remembered session was accepted from
// an unfamiliar device.
type LoginResult struct {
	Result
	Snapshot             *models.Snapshot
	RevalidationRequired bool
}

// MottoVerifier checks that a code is published in an avatar's motto.
// Satisfied by habbo.Client.
type MottoVerifier interface {
	VerifyCodeInMotto(ctx context.Context, nick, code string) bool
}

// SessionManager is the session state machine the facade delegates to.
// Satisfied by session.Manager; may be left nil, in which case the facade
// falls back to writing the snapshot itself without device binding.
type SessionManager interface {
	Create(ctx context.Context, nick string, cargo models.Role, staySignedIn bool) (*models.Snapshot, error)
	Validate(ctx context.Context) (*models.Snapshot, error)
	ValidateDeviceForLogin(ctx context.Context, nick string) (*models.Snapshot, error)
	Logout(ctx context.Context) error
}

type Facade struct {
	users    users.Repository
	codes    codes.Repository
	verifier MottoVerifier
	sessions SessionManager
	store    *localstore.DualStore

	codeTTL  time.Duration
	stayTTL  time.Duration
	shortTTL time.Duration

	log logging.Logger
	now func() time.Time
}

func NewFacade(
	userRepo users.Repository,
	codeRepo codes.Repository,
	verifier MottoVerifier,
	sessions SessionManager,
	store *localstore.DualStore,
	codeTTL, stayTTL, shortTTL time.Duration,
	log logging.Logger,
) *Facade {
	return &Facade{
		users:    userRepo,
		codes:    codeRepo,
		verifier: verifier,
		sessions: sessions,
		store:    store,
		codeTTL:  codeTTL,
		stayTTL:  stayTTL,
		shortTTL: shortTTL,
		log:      log,
		now:      timex.Now,
	}
}

// CreateAccount registers an unverified account and issues the motto
// verification code. The nick "youiz" (any casing) receives the DEV role;
// everyone else starts as Fiscalizador.
func (f *Facade) CreateAccount(ctx context.Context, nick, senha string) CreateAccountResult {
	if _, err := f.users.GetByNick(ctx, nick); err == nil {
		return CreateAccountResult{Result: Result{Message: MsgNickTaken}}
	} else if !errors.Is(err, common.ErrNotFound) {
		f.log.Error(ctx, "nick lookup failed", "nick", nick, "error", err)
		return CreateAccountResult{Result: Result{Message: msgCreateFailed}}
	}

	senhaHash, err := HashPassword(senha)
	if err != nil {
		f.log.Error(ctx, "password hash failed", "error", err)
		return CreateAccountResult{Result: Result{Message: msgCreateFailed}}
	}

	now := f.now()
	user := &models.User{
		Nick:        nick,
		SenhaHash:   senhaHash,
		Cargo:       models.RoleForNick(nick),
		Verificado:  false,
		Status:      models.StatusActive,
		DataCriacao: now,
	}
	if err := f.users.Create(ctx, user); err != nil {
		f.log.Error(ctx, "user insert failed", "nick", nick, "error", err)
		return CreateAccountResult{Result: Result{Message: msgCreateFailed}}
	}

	codigo := codegen.VerificationCode()
	if err := f.codes.Create(ctx, &models.VerificationCode{
		ID:          uuid.NewString(),
		UsuarioNick: nick,
		Codigo:      codigo,
		Tipo:        models.PurposeCreation,
		ExpiraEm:    now.Add(f.codeTTL),
	}); err != nil {
		f.log.Error(ctx, "verification code insert failed", "nick", nick, "error", err)
		return CreateAccountResult{Result: Result{Message: msgCreateFailed}}
	}

	f.log.Info(ctx, "account created", "nick", nick, "cargo", user.Cargo)
	return CreateAccountResult{
		Result: Result{Success: true, Message: MsgAccountCreated},
		Nick:   nick,
		Codigo: codigo,
	}
}

// VerifyAndActivate consumes the verification code after confirming it is
// published in the avatar's motto, then flips the account to verified.
func (f *Facade) VerifyAndActivate(ctx context.Context, nick, codigo string) Result {
	row, err := f.codes.FindActive(ctx, nick, codigo, "", f.now())
	if err != nil {
		if !errors.Is(err, common.ErrNotFound) {
			f.log.Error(ctx, "code lookup failed", "nick", nick, "error", err)
		}
		return Result{Message: MsgCodeInvalid}
	}

	if !f.verifier.VerifyCodeInMotto(ctx, nick, codigo) {
		return Result{Message: MsgCodeNotInMotto}
	}

	if err := f.codes.MarkUsed(ctx, row.ID); err != nil {
		f.log.Error(ctx, "code consume failed", "nick", nick, "error", err)
		return Result{Message: msgVerifyFailed}
	}
	if err := f.users.SetVerified(ctx, nick); err != nil {
		f.log.Error(ctx, "account activation failed", "nick", nick, "error", err)
		return Result{Message: msgVerifyFailed}
	}

	f.log.Info(ctx, "account verified", "nick", nick)
	return Result{Success: true, Message: MsgAccountVerified}
}

// Login authenticates the user and opens a session. An unexpired active
// session already bound to this device short-circuits the password check.
// Credential failures are reported with a single undifferentiated message;
// account-state refusals are specific.
func (f *Facade) Login(ctx context.Context, nick, senha string, staySignedIn bool) LoginResult {
	if f.sessions != nil {
		if snap, err := f.sessions.ValidateDeviceForLogin(ctx, nick); err == nil && snap != nil {
			return LoginResult{
				Result:   Result{Success: true, Message: "Sessão restaurada"},
				Snapshot: snap,
			}
		}
	}

	user, err := f.users.GetByNick(ctx, nick)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return LoginResult{Result: Result{Message: MsgBadCredentials}}
		}
		f.log.Error(ctx, "user lookup failed", "nick", nick, "error", err)
		return LoginResult{Result: Result{Message: msgLoginFailed}}
	}

	ok, legacy := VerifyPassword(senha, user.SenhaHash)
	if !ok {
		return LoginResult{Result: Result{Message: MsgBadCredentials}}
	}

	if !user.Verificado {
		return LoginResult{Result: Result{Message: MsgNotVerified}}
	}
	if msg := statusMessage(user.Status); msg != "" {
		return LoginResult{Result: Result{Message: msg}}
	}

	if legacy {
		if rehash, err := HashPassword(senha); err == nil {
			if err := f.users.UpdatePassword(ctx, nick, rehash); err != nil {
				f.log.Warn(ctx, "legacy hash upgrade failed", "nick", nick, "error", err)
			}
		}
	}

	snap, err := f.openSession(ctx, user, staySignedIn)
	if err != nil {
		f.log.Error(ctx, "session creation failed", "nick", nick, "error", err)
		return LoginResult{Result: Result{Message: msgLoginFailed}}
	}

	return LoginResult{
		Result:               Result{Success: true, Message: "Login realizado com sucesso!"},
		Snapshot:             snap,
		RevalidationRequired: snap.RevalidationRequired,
	}
}

func (f *Facade) openSession(ctx context.Context, user *models.User, staySignedIn bool) (*models.Snapshot, error) {
	if f.sessions != nil {
		return f.sessions.Create(ctx, user.Nick, user.Cargo, staySignedIn)
	}

	// No session manager wired: keep a plain snapshot without a backing
	// record or device binding.
	now := f.now()
	ttl := f.shortTTL
	if staySignedIn {
		ttl = f.stayTTL
	}
	snap := &models.Snapshot{
		Nick:            user.Nick,
		Token:           codegen.BearerToken(""),
		Cargo:           user.Cargo,
		Expiracao:       now.Add(ttl),
		ManterConectado: staySignedIn,
	}
	if err := f.store.SaveSnapshot(ctx, snap, staySignedIn); err != nil {
		return nil, err
	}
	if err := f.users.UpdateLastAccess(ctx, user.Nick, now, ""); err != nil {
		f.log.Warn(ctx, "last-access update failed", "nick", user.Nick, "error", err)
	}
	return snap, nil
}

func statusMessage(status models.UserStatus) string {
	switch status {
	case models.StatusActive:
		return ""
	case models.StatusBlocked:
		return MsgBlocked
	case models.StatusOnLeave:
		return MsgOnLeave
	case models.StatusReserve:
		return MsgReserve
	default:
		return MsgNotActive
	}
}

// RequestPasswordReset issues a reset code for an existing account. The
// code must be published in the motto before ResetPassword will accept it.
func (f *Facade) RequestPasswordReset(ctx context.Context, nick string) CreateAccountResult {
	if _, err := f.users.GetByNick(ctx, nick); err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return CreateAccountResult{Result: Result{Message: MsgBadCredentials}}
		}
		f.log.Error(ctx, "nick lookup failed", "nick", nick, "error", err)
		return CreateAccountResult{Result: Result{Message: msgResetFailed}}
	}

	codigo := codegen.VerificationCode()
	if err := f.codes.Create(ctx, &models.VerificationCode{
		ID:          uuid.NewString(),
		UsuarioNick: nick,
		Codigo:      codigo,
		Tipo:        models.PurposeReset,
		ExpiraEm:    f.now().Add(f.codeTTL),
	}); err != nil {
		f.log.Error(ctx, "reset code insert failed", "nick", nick, "error", err)
		return CreateAccountResult{Result: Result{Message: msgResetFailed}}
	}

	return CreateAccountResult{
		Result: Result{Success: true, Message: MsgResetRequested},
		Nick:   nick,
		Codigo: codigo,
	}
}

// ResetPassword replaces the password after the reset code is confirmed in
// the motto. The code is consumed best-effort once the password is in.
func (f *Facade) ResetPassword(ctx context.Context, nick, codigo, novaSenha string) Result {
	row, err := f.codes.FindActive(ctx, nick, codigo, models.PurposeReset, f.now())
	if err != nil {
		if !errors.Is(err, common.ErrNotFound) {
			f.log.Error(ctx, "reset code lookup failed", "nick", nick, "error", err)
		}
		return Result{Message: MsgCodeInvalid}
	}

	if !f.verifier.VerifyCodeInMotto(ctx, nick, codigo) {
		return Result{Message: MsgCodeNotInMotto}
	}

	senhaHash, err := HashPassword(novaSenha)
	if err != nil {
		f.log.Error(ctx, "password hash failed", "error", err)
		return Result{Message: msgResetFailed}
	}
	if err := f.users.UpdatePassword(ctx, nick, senhaHash); err != nil {
		f.log.Error(ctx, "password update failed", "nick", nick, "error", err)
		return Result{Message: msgResetFailed}
	}

	if err := f.codes.MarkUsed(ctx, row.ID); err != nil {
		f.log.Warn(ctx, "reset code consume failed", "nick", nick, "error", err)
	}

	f.log.Info(ctx, "password reset", "nick", nick)
	return Result{Success: true, Message: MsgPasswordReset}
}

// Logout ends the current session. Always leaves local state cleared.
func (f *Facade) Logout(ctx context.Context) error {
	if f.sessions != nil {
		return f.sessions.Logout(ctx)
	}
	return f.store.ClearSession(ctx)
}

// CurrentUser returns the locally stored snapshot, or nil when there is
// none or it has expired. It does not touch the table store; use Validate
// on the session manager for the authoritative check.
func (f *Facade) CurrentUser(ctx context.Context) (*models.Snapshot, error) {
	snap, err := f.store.LoadSnapshot(ctx)
	if err != nil || snap == nil {
		return nil, err
	}
	if snap.Expired(f.now()) {
		if err := f.Logout(ctx); err != nil {
			f.log.Warn(ctx, "logout after expiry failed", "error", err)
		}
		return nil, nil
	}
	return snap, nil
}

// IsAuthenticated reports whether an unexpired snapshot is present locally.
func (f *Facade) IsAuthenticated(ctx context.Context) bool {
	snap, err := f.CurrentUser(ctx)
	return err == nil && snap != nil
}
