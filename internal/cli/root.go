package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
)

func (a *App) getStatus() string {
	if a.current == nil {
		return ""
	}
	return fmt.Sprintf("(%s)", a.current.Nick)
}

func (a *App) Root(ctx context.Context) {
	fmt.Fprintln(a.out, "Portal DRI (digite 'help' para os comandos)")
	scanner := bufio.NewScanner(os.Stdin)

	a.restoreSession(ctx)

	for {
		fmt.Fprintf(a.out, "dri %s> ", a.getStatus())
		if !scanner.Scan() {
			break
		}
		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 {
			continue
		}

		if !a.dispatch(ctx, parts[0]) {
			return
		}
	}
}

// dispatch runs one command; it returns false when the loop should exit.
func (a *App) dispatch(ctx context.Context, cmd string) bool {
	var err error

	switch cmd {
	case "help":
		if a.isLoggedIn() {
			fmt.Fprintln(a.out, "Comandos: whoami, logout, exit")
		} else {
			fmt.Fprintln(a.out, "Comandos: register, verify, login, resetreq, reset, whoami, exit")
		}
	case "register":
		err = a.Register(ctx)
	case "verify":
		err = a.Verify(ctx)
	case "login":
		err = a.Login(ctx)
	case "resetreq":
		err = a.ResetRequest(ctx)
	case "reset":
		err = a.Reset(ctx)
	case "whoami":
		err = a.WhoAmI(ctx)
	case "logout":
		err = a.Logout(ctx)
	case "exit", "quit":
		fmt.Fprintln(a.out, "Até logo!")
		return false
	default:
		fmt.Fprintln(a.out, "Comando desconhecido:", cmd)
	}

	if err != nil {
		fmt.Fprintln(a.out, "erro:", err)
	}
	return true
}
