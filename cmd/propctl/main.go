package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"

	"github.com/alecthomas/kong"
	"github.com/fystack/typed-storage/pkg/common/config"
	"github.com/fystack/typed-storage/pkg/common/logger"
	"github.com/fystack/typed-storage/pkg/infra"
	"github.com/fystack/typed-storage/pkg/storage"
	"github.com/samber/lo"
)

// --- CLI definitions --- //

type Globals struct {
	ConfigPath string `help:"Path to config file." default:"configs/config.yaml" name:"config" type:"path"`
	Debug      bool   `help:"Enable debug logs." name:"debug"`
}

type CLI struct {
	Globals

	Get GetCmd `cmd:"" help:"Print the JSON property stored under a key."`
	Set SetCmd `cmd:"" help:"Store a JSON value under a key."`
	Rm  RmCmd  `cmd:"" help:"Remove the property stored under a key."`
	Ls  LsCmd  `cmd:"" help:"List keys under a prefix."`
}

type GetCmd struct {
	Key     string `arg:"" help:"Property key."`
	Default string `help:"JSON printed when the key is missing or unreadable." default:"null" name:"default"`
}

type SetCmd struct {
	Key   string `arg:"" help:"Property key."`
	Value string `arg:"" help:"JSON value."`
}

type RmCmd struct {
	Key string `arg:"" help:"Property key."`
}

type LsCmd struct {
	Prefix string `arg:"" help:"Key prefix."`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("propctl"),
		kong.Description("Inspect and edit JSON properties in a typed-storage backend."),
		kong.UsageOnError(),
	)
	err := ctx.Run(&cli.Globals)
	ctx.FatalIfErrorf(err)
}

// open loads the config, initialises logging and installs the default store.
func open(g *Globals) (func(), error) {
	cfg, err := config.Load(g.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	level := logger.ParseLevel(cfg.Logger.Level)
	if g.Debug {
		level = logger.ParseLevel("debug")
	}
	logger.Init(&logger.Options{
		Level:      level,
		Writer:     os.Stderr,
		TimeFormat: cfg.Logger.TimeFormat,
	})

	if err := storage.Init(cfg.KVStore); err != nil {
		return nil, err
	}
	return func() {
		if err := storage.Close(); err != nil {
			logger.Error("Close store failed", "err", err)
		}
	}, nil
}

func property(key string, def json.RawMessage) *storage.Property[json.RawMessage] {
	return storage.New(key, def, storage.WithCodec(infra.JSON))
}

func parseJSON(s string) (json.RawMessage, error) {
	if !json.Valid([]byte(s)) {
		return nil, fmt.Errorf("invalid JSON: %q", s)
	}
	return json.RawMessage(s), nil
}

func (c *GetCmd) Run(g *Globals) error {
	def, err := parseJSON(c.Default)
	if err != nil {
		return err
	}
	closeFn, err := open(g)
	if err != nil {
		return err
	}
	defer closeFn()

	var out bytes.Buffer
	if err := json.Indent(&out, property(c.Key, def).Get(), "", "  "); err != nil {
		return err
	}
	fmt.Println(out.String())
	return nil
}

func (c *SetCmd) Run(g *Globals) error {
	value, err := parseJSON(c.Value)
	if err != nil {
		return err
	}
	closeFn, err := open(g)
	if err != nil {
		return err
	}
	defer closeFn()

	p := property(c.Key, nil)
	p.Set(value)

	// Set swallows store errors; read back to report them.
	if p.Get() == nil {
		return errors.New("value was not persisted, run with --debug for details")
	}
	logger.Info("Property stored", "key", c.Key)
	return nil
}

func (c *RmCmd) Run(g *Globals) error {
	closeFn, err := open(g)
	if err != nil {
		return err
	}
	defer closeFn()

	property(c.Key, nil).Reset()
	logger.Info("Property removed", "key", c.Key)
	return nil
}

func (c *LsCmd) Run(g *Globals) error {
	closeFn, err := open(g)
	if err != nil {
		return err
	}
	defer closeFn()

	pairs, err := storage.DefaultStore().List(c.Prefix)
	if err != nil {
		return fmt.Errorf("list %s: %w", c.Prefix, err)
	}

	keys := lo.Map(pairs, func(p *infra.KVPair, _ int) string { return p.Key })
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Println(k)
	}
	return nil
}
