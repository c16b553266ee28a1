package main

import (
	"io"
	"os"

	"github.com/alecthomas/kong"
	"github.com/effective-security/x/ctl"
	"github.com/pgpverify/go-pgpverify/cmd/pgpverify/cli"
)

// version is set at build time with -ldflags "-X main.version=..."
var version = "v0.0.0-dev"

type app struct {
	cli.Cli
	cli.VerifyCmd
}

func main() {
	realMain(os.Args, os.Stdout, os.Stderr, os.Exit)
}

func realMain(args []string, out io.Writer, errout io.Writer, exit func(int)) {
	cl := app{
		Cli: cli.Cli{},
	}
	cl.Cli.WithErrWriter(errout).
		WithWriter(out)

	parser, err := kong.New(&cl,
		kong.Name("pgpverify"),
		kong.Description("Verifies an OpenPGP detached signature. The exit code is 0 for a valid signature, 1 if no key validates it, 2 for a malformed keyring, 3 for a malformed signature and 4 for an unsupported or rejected algorithm."),
		kong.Writers(out, errout),
		kong.Exit(exit),
		ctl.BoolPtrMapper,
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version,
		})
	if err != nil {
		panic(err)
	}

	ctx, err := parser.Parse(args[1:])
	if err != nil {
		parser.FatalIfErrorf(err)
		return
	}

	if ctx != nil {
		err = ctx.Run(&cl.Cli)
		if err != nil {
			ctx.FatalIfErrorf(err)
			return
		}
		exit(cl.Code())
	}
}
