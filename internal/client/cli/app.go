package cli

import (
	"bufio"
	"context"
	"io"
	"os"

	"github.com/dmitrijs2005/gophlock/internal/api"
	"github.com/dmitrijs2005/gophlock/internal/client/client"
	"github.com/dmitrijs2005/gophlock/internal/client/config"
)

// AccountAPI is the server surface the CLI drives. *client.GRPCClient
// implements it.
type AccountAPI interface {
	Register(ctx context.Context, firstName, lastName, email string, password, confirm []byte) (*api.Account, error)
	Login(ctx context.Context, email string, password []byte) (*api.Account, error)
	ResetPassword(ctx context.Context, email string, password, confirm []byte) (*api.Account, error)
	Status(ctx context.Context, email string) (*client.AccountStatus, error)
	Ping(ctx context.Context) error
	Close() error
}

type App struct {
	config *config.Config
	api    AccountAPI
	reader *bufio.Reader
	out    io.Writer

	// email of the last successful login, shown in the prompt
	email string
}

func NewApp(c *config.Config) (*App, error) {

	apiClient, err := client.NewAccountClient(c.ServerEndpointAddr, c.RequestTimeout)
	if err != nil {
		return nil, err
	}

	return &App{config: c, api: apiClient, reader: bufio.NewReader(os.Stdin), out: os.Stdout}, nil
}

func (a *App) getStatus() string {
	if a.email == "" {
		return ""
	}
	return "(" + a.email + ") "
}

func (a *App) Run(ctx context.Context) {
	defer a.api.Close()

	printlnFn("Welcome to gophlock CLI (type 'help' for commands)")
	runREPL(ctx, a, a.getStatus, a.reader)
}
