package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"math"
	"os"
	"strings"
	"time"

	"github.com/ZebulonRouseFrantzich/dmcpatch/internal/platform"
	lua "github.com/yuin/gopher-lua"
)

const (
	luaGlobal = "dmcpatch"

	// MaxConfigSize bounds the config file read into memory.
	MaxConfigSize = 1 << 20
	// DefaultParseTimeout applies when the caller's context has no deadline.
	DefaultParseTimeout = 5 * time.Second
)

// Parser represents a Lua config parser with platform detection.
type Parser struct {
	detector platform.Detector
	logger   Logger
}

// NewParser creates a new config parser with the given platform detector.
// A nil detector leaves the platform table out of the VM.
func NewParser(detector platform.Detector) *Parser {
	return &Parser{detector: detector, logger: defaultLogger()}
}

// WithLogger sets the logger and returns the parser.
func (p *Parser) WithLogger(logger Logger) *Parser {
	if logger == nil {
		logger = defaultLogger()
	}
	p.logger = logger
	return p
}

// ParseString parses a Lua config from a string.
func (p *Parser) ParseString(ctx context.Context, luaCode string) (*Config, error) {
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, DefaultParseTimeout)
		defer cancel()
	}

	L := newSandboxedVM()
	defer L.Close()
	L.SetContext(ctx)

	if p.detector != nil {
		info, err := p.detector.Detect(ctx)
		if err != nil {
			return nil, fmt.Errorf("platform detection failed: %w", err)
		}
		if err := platform.InjectPlatformTable(L, info); err != nil {
			return nil, fmt.Errorf("inject platform table: %w", err)
		}
		p.logger.Debug("platform table injected", "os", info.OS, "arch", info.Arch, "distro", info.Distro)
	}

	if err := L.DoString(luaCode); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, fmt.Errorf("config evaluation aborted: %w", ctxErr)
		}
		return nil, &ParseError{Message: "Lua error", Detail: err.Error()}
	}

	cfg, err := extractConfig(L)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFile reads and parses the config at path.
func (p *Parser) LoadFile(ctx context.Context, path string) (*Config, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if info.Size() > MaxConfigSize {
		return nil, &ParseError{
			Path:    path,
			Message: "config file too large",
			Detail:  fmt.Sprintf("%d bytes, maximum is %d", info.Size(), MaxConfigSize),
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg, err := p.ParseString(ctx, string(data))
	if err != nil {
		var pe *ParseError
		if errors.As(err, &pe) {
			pe.Path = path
		}
		return nil, err
	}

	p.logger.Debug("config loaded", "path", path)
	return cfg, nil
}

// Load resolves the config path from flagPath and the environment and
// loads it. A missing default file yields Default(); a missing file that
// was named explicitly is an error. The returned path is empty when
// defaults were used.
func (p *Parser) Load(ctx context.Context, flagPath string) (*Config, string, error) {
	path, explicit, err := ResolvePath(flagPath)
	if err != nil {
		return nil, "", err
	}

	cfg, err := p.LoadFile(ctx, path)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			p.logger.Debug("no config file, using defaults", "path", path)
			return Default(), "", nil
		}
		return nil, path, err
	}
	return cfg, path, nil
}

// ParseError represents a config parsing error with friendly message.
type ParseError struct {
	Path    string // Config file, empty for in-memory sources
	Message string // User-friendly message
	Detail  string // Technical details (raw Lua error)
}

func (e *ParseError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: %s: %s", e.Path, e.Message, e.Detail)
	}
	return fmt.Sprintf("%s: %s", e.Message, e.Detail)
}

// FormatError formats a config error for user display. Unless verbose, Lua
// stack tracebacks are dropped.
func FormatError(err error, verbose bool) string {
	var pe *ParseError
	if !errors.As(err, &pe) {
		return err.Error()
	}
	if verbose {
		return fmt.Sprintf("%s\n\nDetails:\n%s", pe.Message, pe.Detail)
	}
	detail := pe.Detail
	if idx := strings.Index(detail, "stack traceback"); idx > 0 {
		detail = strings.TrimSpace(detail[:idx])
	}
	if pe.Path != "" {
		return fmt.Sprintf("%s: %s: %s", pe.Path, pe.Message, detail)
	}
	return fmt.Sprintf("%s: %s", pe.Message, detail)
}

// extractConfig reads the global dmcpatch table over a copy of Default.
func extractConfig(L *lua.LState) (*Config, error) {
	table, ok := L.GetGlobal(luaGlobal).(*lua.LTable)
	if !ok {
		return nil, &ParseError{
			Message: "missing or invalid '" + luaGlobal + "' table",
			Detail:  fmt.Sprintf("expected table, got %s", L.GetGlobal(luaGlobal).Type()),
		}
	}

	cfg := Default()

	for _, f := range []struct {
		name string
		dst  *string
	}{
		{"steam_root", &cfg.SteamRoot},
		{"game_dir", &cfg.GameDir},
		{"log_level", &cfg.LogLevel},
	} {
		if err := stringField(table, f.name, f.dst); err != nil {
			return nil, err
		}
	}

	switch v := table.RawGetString("pause_seconds").(type) {
	case *lua.LNilType:
	case lua.LNumber:
		n := float64(v)
		if n != math.Trunc(n) {
			return nil, &ValidationError{Field: "pause_seconds", Message: fmt.Sprintf("must be a whole number (got %v)", n)}
		}
		cfg.PauseSeconds = int(n)
	default:
		return nil, typeError("pause_seconds", "number", v)
	}

	switch v := table.RawGetString("process_names").(type) {
	case *lua.LNilType:
	case *lua.LTable:
		names, err := extractNames(v)
		if err != nil {
			return nil, err
		}
		cfg.ProcessNames = names
	default:
		return nil, typeError("process_names", "table", v)
	}

	return cfg, nil
}

func stringField(table *lua.LTable, name string, dst *string) error {
	switch v := table.RawGetString(name).(type) {
	case *lua.LNilType:
		return nil
	case lua.LString:
		*dst = string(v)
		return nil
	default:
		return typeError(name, "string", v)
	}
}

// extractNames collects the string values of a Lua list. Nil entries, as
// produced by platform.when, are skipped.
func extractNames(table *lua.LTable) ([]string, error) {
	names := []string{}
	var err error
	table.ForEach(func(key, value lua.LValue) {
		if err != nil {
			return
		}
		switch v := value.(type) {
		case *lua.LNilType:
		case lua.LString:
			names = append(names, string(v))
		default:
			err = typeError(fmt.Sprintf("process_names[%s]", key.String()), "string", v)
		}
	})
	return names, err
}

func typeError(field, want string, got lua.LValue) error {
	return &ValidationError{Field: field, Message: fmt.Sprintf("expected %s, got %s", want, got.Type())}
}
