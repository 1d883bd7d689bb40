package cmd

import (
	"flag"

	"github.com/etnz/rentbook/docs"
	"github.com/google/subcommands"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

// Completion returns the shell completion of the global flags and of the
// commands registered in c.
//
// Install it with COMP_INSTALL=1 rbk.
func Completion(c *subcommands.Commander) *complete.Command {
	root := &complete.Command{
		Sub:   map[string]*complete.Command{},
		Flags: flags(flag.CommandLine),
	}
	c.VisitCommands(func(_ *subcommands.CommandGroup, cmd subcommands.Command) {
		f := flag.NewFlagSet(cmd.Name(), flag.ContinueOnError)
		cmd.SetFlags(f)
		root.Sub[cmd.Name()] = &complete.Command{Flags: flags(f)}
	})

	args := map[string]complete.Predictor{
		"import":  predict.Files("*.csv"),
		"restore": predict.Files("*.json"),
	}
	if topics, err := docs.GetAllTopics(); err == nil {
		args["topic"] = predict.Set(append(topics, "readme"))
	}
	for name, p := range args {
		if sub, ok := root.Sub[name]; ok {
			sub.Args = p
		}
	}
	return root
}

// flags predicts the flags of f. Boolean flags take no value.
func flags(f *flag.FlagSet) map[string]complete.Predictor {
	m := map[string]complete.Predictor{}
	f.VisitAll(func(fl *flag.Flag) {
		if b, ok := fl.Value.(interface{ IsBoolFlag() bool }); ok && b.IsBoolFlag() {
			m[fl.Name] = nil
			return
		}
		switch fl.Name {
		case "config":
			m[fl.Name] = predict.Files("*.yaml")
		case "o", "store":
			m[fl.Name] = predict.Files("*")
		default:
			m[fl.Name] = predict.Something
		}
	})
	return m
}

// Registered reports whether c has a command of that name.
func Registered(c *subcommands.Commander, name string) bool {
	found := false
	c.VisitCommands(func(_ *subcommands.CommandGroup, cmd subcommands.Command) {
		found = found || cmd.Name() == name
	})
	return found
}
