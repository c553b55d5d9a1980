package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"runtime/debug"
	"syscall"
	"time"

	"github.com/common-nighthawk/go-figure"

	"github.com/agrovision/portal/access"
	"github.com/agrovision/portal/backend"
	"github.com/agrovision/portal/branding"
	"github.com/agrovision/portal/dashboard"
	"github.com/agrovision/portal/internal/config"
	"github.com/agrovision/portal/server"
	"github.com/agrovision/portal/server/pendinglogin"
	"github.com/agrovision/portal/session"
	"github.com/agrovision/portal/session/boltrepo"
)

func main() {
	for {
		if err := run(); err != nil {
			log.Fatalf("Error running server: %s\n", err)
			time.Sleep(1 * time.Second)
		} else {
			break
		}
	}
	log.Printf("Server stopped\n")
}

func run() (returnError error) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("Recovered from panic: %v\n", r)
			debug.PrintStack()
			returnError = errors.New("panic recovered")
		}
	}()

	c := config.New()
	displayAppname(c.GetAppName())

	sessionRepo, err := boltrepo.Open(filepath.Join(c.GetDataFolder(), "sessions.db"), c.GetSessionKey(), nil)
	if err != nil {
		return fmt.Errorf("opening session store: %w", err)
	}
	defer sessionRepo.Close()

	// The backend client reads bearer tokens through the manager, and the
	// manager drives logins through the client. The lazy provider breaks
	// the construction order.
	tokens := &lazyTokenProvider{}
	client := backend.New(c, tokens)
	sessions, err := session.NewManager(sessionRepo, client)
	if err != nil {
		return fmt.Errorf("building session manager: %w", err)
	}
	tokens.manager = sessions

	imageMaps, err := dashboard.Load(c.GetDataFolder())
	if err != nil {
		return fmt.Errorf("loading image maps: %w", err)
	}

	srv, err := server.New(c, server.Deps{
		Sessions:  sessions,
		Catalogs:  access.NewRegistry(client.ObjectFetcher),
		Pending:   pendinglogin.NewInMemoryRepo(c.GetPendingLoginTTL()),
		Branding:  branding.NewInMemoryRepo(),
		ImageMaps: imageMaps,
	})
	if err != nil {
		return fmt.Errorf("building server: %w", err)
	}

	httpServer := &http.Server{Addr: c.GetPort(), Handler: srv}
	go listenAndServe(httpServer)
	waitForStopSignal()
	returnError = shutdown(httpServer)
	return returnError
}

// lazyTokenProvider defers to the session manager once it exists.
type lazyTokenProvider struct {
	manager *session.Manager
}

func (p *lazyTokenProvider) AccessToken(sessionID string) (string, error) {
	if p.manager == nil {
		return "", nil
	}
	return p.manager.AccessToken(sessionID)
}

func listenAndServe(server *http.Server) error {
	log.Printf("Server listening on %s\n", server.Addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server.ListenAndServe %w", err)
	}
	return nil
}

func waitForStopSignal() {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop
}

func shutdown(server *http.Server) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server.Shutdown: %w", err)
	}
	return nil
}

func displayAppname(appname string) {
	myFigure := figure.NewFigure(appname, "cybermedium", true)
	myFigure.Print()
	fmt.Println()
}
