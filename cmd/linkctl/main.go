// Linkctl is a command line client of the URL shortening backend API.
//
// Usage:
//
//	linkctl [-u backend URL] [-k token] [-t timeout] command [arguments]
//
// Commands:
//
//	user                      show the identity of the token
//	count                     print the number of links
//	list [-limit N] [-offset N]
//	create URL                shorten URL
//	delete ID                 delete a short link
//	stats ID                  print click statistics and daily totals
//
// BACKEND_URL, BACKEND_TOKEN and BACKEND_TIMEOUT are read from the environment.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/ilyakaznacheev/cleanenv"

	"github.com/danilovkiri/dk_go_url_dashboard/internal/backend"
	backendClient "github.com/danilovkiri/dk_go_url_dashboard/internal/backend/v1"
	"github.com/danilovkiri/dk_go_url_dashboard/internal/config"
	"github.com/danilovkiri/dk_go_url_dashboard/internal/service/charts"
	"github.com/danilovkiri/dk_go_url_dashboard/internal/service/pager"
)

const timeLayout = "2006-01-02 15:04"

// ErrUsage is returned for unknown commands and missing arguments.
var ErrUsage = errors.New("usage: linkctl [-u url] [-k token] [-t timeout] user|count|list|create|delete|stats [args]")

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := run(ctx, os.Args[1:], os.Stdout); err != nil {
		log.Fatal(err)
	}
}

// run executes one command against the backend and writes its result to out.
func run(ctx context.Context, args []string, out io.Writer) error {
	cfg := config.NewDefaultConfiguration()
	if err := cleanenv.ReadEnv(cfg); err != nil {
		return err
	}
	fset := flag.NewFlagSet("linkctl", flag.ContinueOnError)
	fset.StringVar(&cfg.BackendURL, "u", cfg.BackendURL, "backend base URL")
	fset.StringVar(&cfg.BackendToken, "k", cfg.BackendToken, "backend bearer token")
	fset.DurationVar(&cfg.BackendTimeout, "t", cfg.BackendTimeout, "backend request timeout")
	if err := fset.Parse(args); err != nil {
		return err
	}
	if fset.NArg() == 0 {
		return ErrUsage
	}
	api, err := backendClient.InitClient(cfg)
	if err != nil {
		return err
	}
	command, rest := fset.Arg(0), fset.Args()[1:]
	switch command {
	case "user":
		return user(ctx, api, out)
	case "count":
		return count(ctx, api, out)
	case "list":
		return list(ctx, api, rest, out)
	case "create":
		if len(rest) != 1 {
			return ErrUsage
		}
		return create(ctx, api, rest[0], out)
	case "delete":
		if len(rest) != 1 {
			return ErrUsage
		}
		if err := api.DeleteLink(ctx, rest[0]); err != nil {
			return err
		}
		_, err = fmt.Fprintf(out, "deleted %s\n", rest[0])
		return err
	case "stats":
		if len(rest) != 1 {
			return ErrUsage
		}
		return stats(ctx, api, rest[0], out)
	default:
		return ErrUsage
	}
}

func user(ctx context.Context, api backend.UserGetter, out io.Writer) error {
	u, err := api.User(ctx)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(out, "%s <%s> admin=%t\n", u.Name(), u.Email, u.Admin)
	return err
}

func count(ctx context.Context, api backend.LinkLister, out io.Writer) error {
	n, err := api.CountLinks(ctx)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(out, n)
	return err
}

func list(ctx context.Context, api backend.LinkLister, args []string, out io.Writer) error {
	fset := flag.NewFlagSet("list", flag.ContinueOnError)
	limit := fset.Int("limit", pager.DefaultLimit, "page size")
	offset := fset.Int("offset", 0, "page offset")
	if err := fset.Parse(args); err != nil {
		return err
	}
	n, err := api.CountLinks(ctx)
	if err != nil {
		return err
	}
	p := pager.New(n, *limit, *offset)
	links, err := api.ListLinks(ctx, p.Limit, p.Offset)
	if err != nil {
		return err
	}
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "SHORT\tCLICKS\tCREATED\tLONG")
	for _, l := range links {
		fmt.Fprintf(tw, "%s\t%d\t%s\t%s\n", l.Short, l.Clicks, l.Created.Format(timeLayout), l.Long)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	_, err = fmt.Fprintf(out, "%d-%d of %d\n", p.First(), p.High(), p.Count)
	return err
}

func create(ctx context.Context, api backend.LinkEditor, long string, out io.Writer) error {
	link, err := api.CreateLink(ctx, long)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(out, link.Short)
	return err
}

func stats(ctx context.Context, api backend.StatsGetter, short string, out io.Writer) error {
	s, err := api.Stats(ctx, short)
	if err != nil {
		return err
	}
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "short\t%s\n", s.Short)
	fmt.Fprintf(tw, "clicks\t%d\n", s.Clicks)
	if !s.LastUpdated.IsZero() {
		fmt.Fprintf(tw, "updated\t%s\n", s.LastUpdated.Format(time.RFC3339))
	}
	section := func(title string, points []charts.Point) {
		if len(points) == 0 {
			return
		}
		fmt.Fprintf(tw, "\n%s\t\n", title)
		for _, pt := range points {
			fmt.Fprintf(tw, "  %s\t%d\n", pt.Label, pt.Value)
		}
	}
	section("browsers", charts.Ranked(s.Browsers))
	section("platforms", charts.Ranked(s.Platforms))
	section("referrers", charts.Ranked(s.Referrers))
	section("countries", charts.Ranked(s.Countries))
	section("days", charts.Days(s.Hours))
	return tw.Flush()
}
