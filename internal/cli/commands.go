package cli

import (
	"context"
	"fmt"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Register prompts for a nick and password, creates the account and prints
// the verification code the user must publish in their Habbo motto.
func (a *App) Register(ctx context.Context) error {
	nick, err := getSimpleText(a.reader, "Digite seu nick do Habbo", a.out)
	if err != nil {
		return err
	}
	senha, err := getPassword(a.out, "Senha")
	if err != nil {
		return err
	}

	res := a.auth.CreateAccount(ctx, nick, senha)
	fmt.Fprintln(a.out, res.Message)
	if res.Success {
		fmt.Fprintf(a.out, "Seu código: %s\nColoque-o na missão e rode 'verify'.\n", res.Codigo)
	}
	return nil
}

// Verify consumes the motto verification code and activates the account.
func (a *App) Verify(ctx context.Context) error {
	nick, err := getSimpleText(a.reader, "Digite seu nick do Habbo", a.out)
	if err != nil {
		return err
	}
	codigo, err := getSimpleText(a.reader, "Digite o código (ex: L-123)", a.out)
	if err != nil {
		return err
	}

	res := a.auth.VerifyAndActivate(ctx, nick, codigo)
	fmt.Fprintln(a.out, res.Message)
	return nil
}

// Login authenticates and opens a session. An unexpired session already
// bound to this device is adopted without asking for the password again.
func (a *App) Login(ctx context.Context) error {
	nick, err := getSimpleText(a.reader, "Digite seu nick do Habbo", a.out)
	if err != nil {
		return err
	}
	senha, err := getPassword(a.out, "Senha")
	if err != nil {
		return err
	}
	stay, err := getSimpleText(a.reader, "Manter conectado? (s/n)", a.out)
	if err != nil {
		return err
	}

	res := a.auth.Login(ctx, nick, senha, stay == "s" || stay == "S")
	fmt.Fprintln(a.out, res.Message)
	if res.Success {
		a.current = res.Snapshot
		if res.RevalidationRequired {
			fmt.Fprintln(a.out, "Sessão aberta em outro dispositivo; confirme sua identidade.")
		}
	}
	return nil
}

// ResetRequest issues a password-reset code for an existing account.
func (a *App) ResetRequest(ctx context.Context) error {
	nick, err := getSimpleText(a.reader, "Digite seu nick do Habbo", a.out)
	if err != nil {
		return err
	}

	res := a.auth.RequestPasswordReset(ctx, nick)
	fmt.Fprintln(a.out, res.Message)
	if res.Success {
		fmt.Fprintf(a.out, "Seu código: %s\n", res.Codigo)
	}
	return nil
}

// Reset replaces the password after the reset code is confirmed in the
// motto.
func (a *App) Reset(ctx context.Context) error {
	nick, err := getSimpleText(a.reader, "Digite seu nick do Habbo", a.out)
	if err != nil {
		return err
	}
	codigo, err := getSimpleText(a.reader, "Digite o código de redefinição", a.out)
	if err != nil {
		return err
	}
	senha, err := getPassword(a.out, "Nova senha")
	if err != nil {
		return err
	}

	res := a.auth.ResetPassword(ctx, nick, codigo, senha)
	fmt.Fprintln(a.out, res.Message)
	return nil
}

// WhoAmI prints the locally stored session, if any.
func (a *App) WhoAmI(ctx context.Context) error {
	snap, err := a.auth.CurrentUser(ctx)
	if err != nil {
		return err
	}
	if snap == nil {
		a.current = nil
		fmt.Fprintln(a.out, "Não autenticado")
		return nil
	}
	fmt.Fprintf(a.out, "%s (%s), sessão expira em %s\n",
		snap.Nick, snap.Cargo, snap.Expiracao.Format("02/01/2006 15:04"))
	return nil
}

// Logout ends the session. Local state is always cleared, even when the
// gateway is unreachable.
func (a *App) Logout(ctx context.Context) error {
	if err := a.auth.Logout(ctx); err != nil {
		return err
	}
	a.current = nil
	fmt.Fprintln(a.out, "Sessão encerrada")
	return nil
}

// restoreSession revalidates a snapshot left over from a previous run so
// the user lands already authenticated when possible.
func (a *App) restoreSession(ctx context.Context) {
	snap, err := a.sessions.Validate(ctx)
	if err != nil {
		a.log.Warn(ctx, "session restore failed", "error", err)
		return
	}
	if snap == nil {
		return
	}
	a.current = snap
	if snap.RevalidationRequired {
		fmt.Fprintln(a.out, "Sessão aberta em outro dispositivo; confirme sua identidade.")
		return
	}
	fmt.Fprintf(a.out, "Bem-vindo de volta, %s!\n", snap.Nick)
}
