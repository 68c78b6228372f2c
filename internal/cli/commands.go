package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"maps"
	"os"
	"slices"
	"strings"

	"github.com/google/subcommands"

	"github.com/ndewijer/DAO-Treasury-Manager-Backend/internal/api/request"
)

const defaultServer = "http://localhost:5001"

// Commands returns every treasuryctl subcommand writing to out.
func Commands(out io.Writer) []subcommands.Command {
	return []subcommands.Command{
		&stateCmd{conn: conn{out: out}},
		&policyCmd{conn: conn{out: out}},
		&scenarioCmd{conn: conn{out: out}},
		&logsCmd{conn: conn{out: out}},
		&versionCmd{conn: conn{out: out}},
	}
}

// conn holds the flags shared by every command.
type conn struct {
	out    io.Writer
	server string
	apiKey string
	plain  bool
}

func (c *conn) setFlags(f *flag.FlagSet) {
	server := os.Getenv("TREASURY_SERVER")
	if server == "" {
		server = defaultServer
	}
	f.StringVar(&c.server, "server", server, "treasury API base URL (env TREASURY_SERVER)")
	f.StringVar(&c.apiKey, "key", os.Getenv("INTERNAL_API_KEY"), "developer API key (env INTERNAL_API_KEY)")
	f.BoolVar(&c.plain, "plain", false, "print raw markdown")
}

func (c *conn) client() *Client {
	return NewClient(strings.TrimRight(c.server, "/"), c.apiKey)
}

func (c *conn) print(md string) subcommands.ExitStatus {
	if err := printMarkdown(c.out, md, c.plain); err != nil {
		return c.fail(err)
	}
	return subcommands.ExitSuccess
}

func (c *conn) fail(err error) subcommands.ExitStatus {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	return subcommands.ExitFailure
}

type stateCmd struct{ conn }

func (*stateCmd) Name() string     { return "state" }
func (*stateCmd) Synopsis() string { return "show KPIs and holdings against their targets" }
func (*stateCmd) Usage() string {
	return `treasuryctl state [-server <url>] [-plain]

  Displays the treasury KPIs and each holding's drift from its target.
`
}
func (c *stateCmd) SetFlags(f *flag.FlagSet) { c.setFlags(f) }

func (c *stateCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...any) subcommands.ExitStatus {
	snap, err := c.client().State(ctx)
	if err != nil {
		return c.fail(err)
	}
	return c.print(StateMarkdown(snap))
}

type policyCmd struct{ conn }

func (*policyCmd) Name() string     { return "policy" }
func (*policyCmd) Synopsis() string { return "run the policy engine and show its decision" }
func (*policyCmd) Usage() string {
	return `treasuryctl policy [-server <url>] [-plain]

  Evaluates the treasury policy on the server. The decision is appended to the policy log.
`
}
func (c *policyCmd) SetFlags(f *flag.FlagSet) { c.setFlags(f) }

func (c *policyCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...any) subcommands.ExitStatus {
	decision, err := c.client().RunPolicy(ctx)
	if err != nil {
		return c.fail(err)
	}
	return c.print(DecisionMarkdown(decision))
}

type scenarioCmd struct {
	conn
	drop    float64
	expense float64
}

func (*scenarioCmd) Name() string     { return "scenario" }
func (*scenarioCmd) Synopsis() string { return "run a stress scenario" }
func (*scenarioCmd) Usage() string {
	return `treasuryctl scenario [-drop <pct>] [-expense <pct>] [-server <url>] [-plain]

  Runs the stress scenario. Flags that are given replace the stored parameters first.
`
}

func (c *scenarioCmd) SetFlags(f *flag.FlagSet) {
	c.setFlags(f)
	f.Float64Var(&c.drop, "drop", 0, "simulated asset price drop, 0-100")
	f.Float64Var(&c.expense, "expense", 0, "simulated expense increase, 0-100")
}

func (c *scenarioCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...any) subcommands.ExitStatus {
	var update request.UpdateScenarioRequest
	f.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "drop":
			update.AssetDropPct = &c.drop
		case "expense":
			update.ExpenseRisePct = &c.expense
		}
	})

	cfg, result, err := c.client().RunScenario(ctx, update)
	if err != nil {
		return c.fail(err)
	}
	return c.print(ScenarioMarkdown(cfg, result))
}

type logsCmd struct {
	conn
	category string
	perPage  int
}

func (*logsCmd) Name() string     { return "logs" }
func (*logsCmd) Synopsis() string { return "show the activity log" }
func (*logsCmd) Usage() string {
	return `treasuryctl logs [-category <name>] [-n <count>] [-key <api key>] [-server <url>] [-plain]

  Lists the newest activity log entries. Requires the server's INTERNAL_API_KEY.
`
}

func (c *logsCmd) SetFlags(f *flag.FlagSet) {
	c.setFlags(f)
	f.StringVar(&c.category, "category", "", "only entries of this category")
	f.IntVar(&c.perPage, "n", 20, "number of entries, 1-100")
}

func (c *logsCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...any) subcommands.ExitStatus {
	page, err := c.client().Logs(ctx, c.category, c.perPage)
	if err != nil {
		return c.fail(err)
	}
	return c.print(LogsMarkdown(page))
}

type versionCmd struct{ conn }

func (*versionCmd) Name() string     { return "version" }
func (*versionCmd) Synopsis() string { return "show the server version and features" }
func (*versionCmd) Usage() string {
	return `treasuryctl version [-server <url>]
`
}
func (c *versionCmd) SetFlags(f *flag.FlagSet) { c.setFlags(f) }

func (c *versionCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...any) subcommands.ExitStatus {
	info, err := c.client().Version(ctx)
	if err != nil {
		return c.fail(err)
	}
	fmt.Fprintf(c.out, "app %s, schema %s, store %s\n", info.AppVersion, info.DbVersion, info.Store)
	for _, name := range slices.Sorted(maps.Keys(info.Features)) {
		if info.Features[name] {
			fmt.Fprintf(c.out, "  %s\n", name)
		}
	}
	return subcommands.ExitSuccess
}
