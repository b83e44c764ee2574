package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime/debug"

	"go.uber.org/zap"
	"go.uber.org/zap/buffer"
	"go.uber.org/zap/zapcore"

	"github.com/TSTGoose/XMLParser/misc"
)

const (
	levelNone   = "none"
	levelNormal = "normal"
	levelDebug  = "debug"
)

type LoggerConfig struct {
	Level       string `yaml:"level" validate:"required,oneof=none debug normal"`
	Destination string `yaml:"destination,omitempty" sanitize:"path_clean,assure_dir_exists_for_file" validate:"omitempty,filepath"`
	Mode        string `yaml:"mode,omitempty" validate:"omitempty,oneof=append overwrite"`
}

type LoggingConfig struct {
	FileLogger    LoggerConfig `yaml:"file"`
	ConsoleLogger LoggerConfig `yaml:"console"`
}

// Prepare returns configured zap logger for use by the program. When debug
// report is requested file log is always written at debug level and stored
// in the report together with panic output.
func (conf *LoggingConfig) Prepare(rpt *Report) (*zap.Logger, error) {
	stdout, stderr := consoleCores(conf.ConsoleLogger.Level)

	level, mode := conf.FileLogger.Level, conf.FileLogger.Mode
	if rpt != nil {
		level, mode = levelDebug, "overwrite"
	}
	file, redirected, err := fileCore(conf.FileLogger.Destination, level, mode, rpt)
	if err != nil {
		return nil, err
	}

	log := zap.New(zapcore.NewTee(stderr, stdout, file), zap.AddCaller())
	if len(redirected) != 0 {
		log.Warn("Log file was redirected to new location", zap.String("location", redirected))
	}
	return log.Named(misc.GetAppName()), nil
}

// minLevel returns lowest enabled level for configuration value, false for
// "none".
func minLevel(level string) (zapcore.Level, bool) {
	switch level {
	case levelDebug:
		return zapcore.DebugLevel, true
	case levelNormal:
		return zapcore.InfoLevel, true
	}
	return zapcore.InvalidLevel, false
}

func consoleEncoderConfig(stream *os.File) zapcore.EncoderConfig {
	ec := zap.NewDevelopmentEncoderConfig()
	ec.EncodeCaller = nil
	if EnableColorOutput(stream) {
		ec.EncodeLevel = zapcore.CapitalColorLevelEncoder
		ec.TimeKey = zapcore.OmitKey
	} else {
		ec.EncodeLevel = zapcore.CapitalLevelEncoder
	}
	return ec
}

// consoleCores splits console output: errors go to stderr, everything else
// to stdout.
func consoleCores(level string) (stdout, stderr zapcore.Core) {
	low, ok := minLevel(level)
	if !ok {
		return zapcore.NewNopCore(), zapcore.NewNopCore()
	}
	verbose := level == levelDebug

	stdout = zapcore.NewCore(newConsoleEncoder(consoleEncoderConfig(os.Stdout), verbose), zapcore.Lock(os.Stdout),
		zap.LevelEnablerFunc(func(lvl zapcore.Level) bool {
			return low <= lvl && lvl < zapcore.ErrorLevel
		}))
	stderr = zapcore.NewCore(newConsoleEncoder(consoleEncoderConfig(os.Stderr), verbose), zapcore.Lock(os.Stderr),
		zap.LevelEnablerFunc(func(lvl zapcore.Level) bool {
			return lvl >= zapcore.ErrorLevel
		}))
	return stdout, stderr
}

func openLog(fname, mode string) (*os.File, error) {
	flags := os.O_CREATE | os.O_WRONLY
	if mode == "append" {
		flags |= os.O_APPEND
	} else {
		flags |= os.O_TRUNC
	}
	return os.OpenFile(fname, flags, 0644)
}

// fileCore opens log file, falling back to temporary location when
// destination is not writable. Returns name of the new location in that case.
func fileCore(dest, level, mode string, rpt *Report) (zapcore.Core, string, error) {
	low, ok := minLevel(level)
	if !ok {
		return zapcore.NewNopCore(), "", nil
	}

	// panic output goes next to the log, missing panic log is not an error
	ef, err := openLog(filepath.Join(filepath.Dir(dest), misc.GetAppName()+"-panic.log"), mode)
	if err != nil {
		ef, err = os.CreateTemp("", misc.GetAppName()+"-panic.*.log")
	}
	if err == nil {
		debug.SetCrashOutput(ef, debug.CrashOptions{})
		rpt.Store("panic.log", ef.Name())
		ef.Close()
	}

	var redirected string
	f, err := openLog(dest, mode)
	if err != nil {
		if f, err = os.CreateTemp("", misc.GetAppName()+".*.log"); err != nil {
			return nil, "", fmt.Errorf("unable to access file log destination (%s): %w", dest, err)
		}
		redirected = f.Name()
	}
	rpt.Store("final.log", f.Name())

	return zapcore.NewCore(zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig()), zapcore.Lock(f), zap.NewAtomicLevelAt(low)), redirected, nil
}

// consoleEnc keeps console output short: errors are printed without verbose
// details and, unless console is in debug mode, per document diagnostic lists
// are left to the file log. Their counts are logged separately.
type consoleEnc struct {
	zapcore.Encoder
	verbose bool
}

func newConsoleEncoder(cfg zapcore.EncoderConfig, verbose bool) zapcore.Encoder {
	return consoleEnc{Encoder: zapcore.NewConsoleEncoder(cfg), verbose: verbose}
}

func (c consoleEnc) Clone() zapcore.Encoder {
	return consoleEnc{Encoder: c.Encoder.Clone(), verbose: c.verbose}
}

func (c consoleEnc) EncodeEntry(ent zapcore.Entry, fields []zapcore.Field) (*buffer.Buffer, error) {
	out := make([]zapcore.Field, 0, len(fields))
	for _, f := range fields {
		switch {
		case f.Type == zapcore.ErrorType:
			if e, ok := f.Interface.(error); ok {
				f.Interface = errors.New(e.Error())
			}
		case f.Type == zapcore.ArrayMarshalerType && !c.verbose:
			continue
		}
		out = append(out, f)
	}
	return c.Encoder.EncodeEntry(ent, out)
}
