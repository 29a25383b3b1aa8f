package main

import (
	"fmt"
	"io"
	"math"
	"math/rand"
	"os"
	"strings"
	"testing"
	"text/tabwriter"
	"time"

	"github.com/emirpasic/gods/sets/treeset"
	"github.com/g-m-twostay/go-ordset/Sets"
	"github.com/g-m-twostay/go-ordset/Sets/TreeSet"
	"github.com/g-m-twostay/go-ordset/Trees"
	"github.com/google/btree"
	"github.com/petar/GoLLRB/llrb"
	"github.com/rs/zerolog"
	"github.com/spf13/cast"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	// The prefix for configuration keys inside environment.
	envPrefix = "TREESET"
	// The default name for config file.
	defaultConfigFile = "treeset.yaml"
	// The largest set written by --dump.
	dumpN = 32
)

type measureConfig struct {
	Backends   []string
	References []string
	N          int
	Ops        int
	Rounds     int
	Seed       int64
	Dump       bool
	LogLevel   string
	Pretty     bool
	CfgFile    string
}

// subject is one implementation under measurement. run inserts all, looks up queries, then
// removes all.
type subject struct {
	name string
	run  func(all, queries []int)
}

func main() {
	testing.Init()
	cmd, _ := newRootCmd()
	cobra.CheckErr(cmd.Execute())
}

func newRootCmd() (*cobra.Command, *measureConfig) {
	config := &measureConfig{}
	cmd := &cobra.Command{
		Use:   "measureSet",
		Short: "Measure the TreeSet backends",
		Long: `Times a workload of inserts, lookups and removes of random integers on every selected
TreeSet backend and on the selected reference libraries, and prints the mean and standard
deviation over the rounds.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initializeConfig(cmd, config)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.OutOrStdout(), config)
		},
	}
	var kinds []string
	for _, k := range Trees.Kinds() {
		kinds = append(kinds, k.String())
	}
	f := cmd.Flags()
	f.StringSliceVar(&config.Backends, "backend", kinds, "TreeSet backends to measure")
	f.StringSliceVar(&config.References, "reference", []string{"btree", "llrb", "gods"}, "reference implementations to measure: btree, llrb, gods")
	f.IntVar(&config.N, "n", 100000, "number of values inserted and removed")
	f.IntVar(&config.Ops, "ops", 50000, "number of lookups")
	f.IntVar(&config.Rounds, "rounds", 5, "number of times each implementation is measured")
	f.Int64Var(&config.Seed, "seed", 0, "seed of the random values")
	f.BoolVar(&config.Dump, "dump", false, "print the structure of a small set for each backend")
	f.StringVar(&config.LogLevel, "log-level", "info", "log level: trace, debug, info, warn, error")
	f.BoolVar(&config.Pretty, "pretty", false, "human readable logs")
	f.StringVar(&config.CfgFile, "config", "", "config file location (default is ./"+defaultConfigFile+")")
	return cmd, config
}

// initializeConfig reads in the config file and ENV variables if set.
func initializeConfig(cmd *cobra.Command, config *measureConfig) error {
	v := viper.New()
	if config.CfgFile == "" {
		config.CfgFile = defaultConfigFile
	}
	if _, err := os.Stat(config.CfgFile); err == nil {
		v.SetConfigFile(config.CfgFile)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("read config %s: %w", config.CfgFile, err)
		}
	}
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()
	return bindFlags(cmd, v)
}

// bindFlags applies the viper value of each flag that isn't set on the command line.
func bindFlags(cmd *cobra.Command, v *viper.Viper) error {
	var bindErr error
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		if bindErr != nil {
			return
		}
		// --log-level is TREESET_LOG_LEVEL
		if strings.Contains(f.Name, "-") {
			suffix := strings.ToUpper(strings.ReplaceAll(f.Name, "-", "_"))
			if err := v.BindEnv(f.Name, fmt.Sprintf("%s_%s", envPrefix, suffix)); err != nil {
				bindErr = fmt.Errorf("bind env to flag %s: %w", f.Name, err)
				return
			}
		}
		if f.Changed || !v.IsSet(f.Name) {
			return
		}
		val := v.Get(f.Name)
		s := fmt.Sprintf("%v", val)
		if f.Value.Type() == "stringSlice" {
			s = strings.Join(cast.ToStringSlice(val), ",")
		}
		if err := cmd.Flags().Set(f.Name, s); err != nil {
			bindErr = fmt.Errorf("set flag %s from config: %w", f.Name, err)
		}
	})
	return bindErr
}

func newLogger(level string, pretty bool, w io.Writer) (zerolog.Logger, error) {
	l, err := zerolog.ParseLevel(level)
	if err != nil {
		return zerolog.Nop(), fmt.Errorf("log level %q: %w", level, err)
	}
	if pretty {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	}
	return zerolog.New(w).Level(l).With().Timestamp().Str("service", "measureSet").Logger(), nil
}

func run(out io.Writer, config *measureConfig) error {
	log, err := newLogger(config.LogLevel, config.Pretty, os.Stderr)
	if err != nil {
		return err
	}
	if config.N <= 0 || config.Ops < 0 || config.Rounds <= 0 {
		return fmt.Errorf("n and rounds must be positive and ops not negative, got n=%d ops=%d rounds=%d", config.N, config.Ops, config.Rounds)
	}
	var subjects []subject
	for _, name := range config.Backends {
		k, err := Trees.ParseKind(name)
		if err != nil {
			return err
		}
		subjects = append(subjects, setSubject(k))
	}
	for _, name := range config.References {
		s, err := referenceSubject(name)
		if err != nil {
			return err
		}
		subjects = append(subjects, s)
	}

	r := rand.New(rand.NewSource(config.Seed))
	all := make([]int, config.N)
	for i := range all {
		all[i] = r.Int()
	}
	queries := make([]int, config.Ops)
	for i := range queries {
		if i%2 == 0 {
			queries[i] = all[r.Intn(len(all))]
		} else {
			queries[i] = r.Int()
		}
	}
	log.Info().Int("n", config.N).Int("ops", config.Ops).Int64("seed", config.Seed).Int("subjects", len(subjects)).Msg("measuring")

	if config.Dump {
		for _, name := range config.Backends {
			k, _ := Trees.ParseKind(name)
			if err := dump(out, k, all[:min(dumpN, len(all))], log); err != nil {
				return err
			}
		}
	}

	tw := tabwriter.NewWriter(out, 0, 8, 2, ' ', 0)
	fmt.Fprintln(tw, "implementation\tmean ms/op\tstddev ms/op\tallocs/op")
	for _, s := range subjects {
		mean, stddev, allocs := measure(s, all, queries, config.Rounds)
		log.Debug().Str("subject", s.name).Float64("mean", mean).Msg("measured")
		fmt.Fprintf(tw, "%s\t%.3f\t%.3f\t%d\n", s.name, mean, stddev, allocs)
	}
	return tw.Flush()
}

func setSubject(k Trees.Kind) subject {
	return subject{"TreeSet/" + k.String(), func(all, queries []int) {
		s := TreeSet.New(Sets.Natural[int](), nil, TreeSet.WithBackend(k))
		for _, v := range all {
			s.Insert(v)
		}
		for _, v := range queries {
			s.Find(v)
		}
		for _, v := range all {
			s.Remove(v)
		}
	}}
}

func referenceSubject(name string) (subject, error) {
	switch strings.ToLower(name) {
	case "btree":
		return subject{"google/btree", func(all, queries []int) {
			t := btree.NewG[int](3, Sets.Natural[int]().Less)
			for _, v := range all {
				t.ReplaceOrInsert(v)
			}
			for _, v := range queries {
				t.Get(v)
			}
			for _, v := range all {
				t.Delete(v)
			}
		}}, nil
	case "llrb":
		return subject{"GoLLRB", func(all, queries []int) {
			t := llrb.New()
			for _, v := range all {
				t.ReplaceOrInsert(llrb.Int(v))
			}
			for _, v := range queries {
				t.Has(llrb.Int(v))
			}
			for _, v := range all {
				t.Delete(llrb.Int(v))
			}
		}}, nil
	case "gods":
		return subject{"gods/treeset", func(all, queries []int) {
			t := treeset.NewWithIntComparator()
			for _, v := range all {
				t.Add(v)
			}
			for _, v := range queries {
				t.Contains(v)
			}
			for _, v := range all {
				t.Remove(v)
			}
		}}, nil
	}
	return subject{}, fmt.Errorf("unknown reference %q, want one of btree, llrb, gods", name)
}

func measure(s subject, all, queries []int, rounds int) (mean, stddev float64, allocs int64) {
	ms := make([]float64, 0, rounds)
	for range rounds {
		br := testing.Benchmark(func(b *testing.B) {
			b.ReportAllocs()
			for range b.N {
				s.run(all, queries)
			}
		})
		ms = append(ms, float64(br.NsPerOp())/1e6)
		allocs = br.AllocsPerOp()
	}
	for _, v := range ms {
		mean += v
	}
	mean /= float64(len(ms))
	for _, v := range ms {
		d := v - mean
		stddev += d * d
	}
	return mean, math.Sqrt(stddev / float64(len(ms))), allocs
}

func dump(w io.Writer, k Trees.Kind, vs []int, log zerolog.Logger) error {
	s := TreeSet.New(Sets.Natural[int](), nil, TreeSet.WithBackend(k), TreeSet.WithLogger(log))
	for _, v := range vs {
		s.Insert(v)
	}
	if s.Corrupt() {
		return fmt.Errorf("%v set of %d values is corrupt", k, len(vs))
	}
	fmt.Fprintf(w, "%v, height %d:\n", k, s.Height())
	s.Print(w)
	return nil
}
