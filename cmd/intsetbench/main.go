// Command intsetbench runs the intset example programs and
// benchmarks intset against the built-in map.
package main

import (
	"os"

	"github.com/gravitational/trace"
	"github.com/sirupsen/logrus"
	"gopkg.in/alecthomas/kingpin.v2"
)

var log = logrus.WithField(trace.Component, "intsetbench")

type application struct {
	*kingpin.Application
	debug   *bool
	workers *int

	exampleAddCmd   *kingpin.CmdClause
	exampleUnionCmd *kingpin.CmdClause

	benchCmd struct {
		*kingpin.CmdClause
		size   *int
		seed   *uint64
		verify *bool
		ops    *[]string
	}
}

func main() {
	app := registerCommands(kingpin.New("intsetbench", "Example programs and benchmarks for the intset package."))
	if err := run(app, os.Args[1:]); err != nil {
		log.WithError(err).Error("Command failed.")
		os.Exit(255)
	}
}

func registerCommands(app *kingpin.Application) *application {
	a := &application{Application: app}
	a.debug = app.Flag("debug", "Enable debug logging.").Bool()
	a.workers = app.Flag("workers", "Maximum number of workers per bulk operation. Defaults to the number of logical CPUs.").Default("0").Int()

	example := app.Command("example", "Run an example program.")
	a.exampleAddCmd = example.Command("add", "Add values one at a time and as a slice, then merge two sets.")
	a.exampleUnionCmd = example.Command("union", "Compute the union of two sets.")

	a.benchCmd.CmdClause = app.Command("bench", "Benchmark set operations against the built-in map.")
	a.benchCmd.size = a.benchCmd.Flag("size", "Number of values per operation.").Default("1000000").Int()
	a.benchCmd.seed = a.benchCmd.Flag("seed", "Seed for the random value order.").Default("1").Uint64()
	a.benchCmd.verify = a.benchCmd.Flag("verify", "Check set invariants and results against the map after each operation.").Bool()
	a.benchCmd.ops = a.benchCmd.Flag("op", "Operation to run; may be repeated. Defaults to all of them.").Enums(benchOpNames()...)
	return a
}

func run(app *application, args []string) error {
	cmd, err := app.Parse(args)
	if err != nil {
		return trace.Wrap(err)
	}
	trace.SetDebug(*app.debug)
	if *app.debug {
		logrus.SetLevel(logrus.DebugLevel)
	}
	log.WithField("args", args).Debug("Executing.")

	switch cmd {
	case app.exampleAddCmd.FullCommand():
		return exampleAdd(os.Stdout, *app.workers)
	case app.exampleUnionCmd.FullCommand():
		return exampleUnion(os.Stdout, *app.workers)
	case app.benchCmd.FullCommand():
		return bench(os.Stdout, benchConfig{
			Size:    *app.benchCmd.size,
			Workers: *app.workers,
			Seed:    *app.benchCmd.seed,
			Verify:  *app.benchCmd.verify,
			Ops:     *app.benchCmd.ops,
		})
	}
	return trace.BadParameter("unsupported command %q", cmd)
}
