// Package logging sets up the dual info/error sinks every other package
// writes through. It mirrors the split-file convention the rest of the
// fleet's services use rather than funnelling everything through a single
// stream.
package logging

import (
	"log"
	"os"
	"path/filepath"
)

// Loggers bundles the two sinks a server instance writes through.
type Loggers struct {
	Info  *log.Logger
	Error *log.Logger
}

// Setup opens (creating if necessary) server.log and error.log under dir
// and returns loggers writing to them, prefixed and timestamped.
func Setup(dir string) (Loggers, error) {
	if dir == "" {
		dir = "./logs"
	}
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return Loggers{}, err
		}
	}

	infoFile, err := os.OpenFile(filepath.Join(dir, "server.log"), os.O_RDWR|os.O_CREATE|os.O_APPEND, 0o666)
	if err != nil {
		return Loggers{}, err
	}
	errFile, err := os.OpenFile(filepath.Join(dir, "error.log"), os.O_RDWR|os.O_CREATE|os.O_APPEND, 0o666)
	if err != nil {
		return Loggers{}, err
	}

	return Loggers{
		Info:  log.New(infoFile, "INFO: ", log.Ldate|log.Ltime|log.Lshortfile),
		Error: log.New(errFile, "ERROR: ", log.Ldate|log.Ltime|log.Lshortfile),
	}, nil
}

// Discard returns loggers that write nowhere, for tests that don't want to
// touch the filesystem.
func Discard() Loggers {
	return Loggers{
		Info:  log.New(discardWriter{}, "INFO: ", 0),
		Error: log.New(discardWriter{}, "ERROR: ", 0),
	}
}

type discardWriter struct{}

func (discardWriter) Write(p []byte) (int, error) { return len(p), nil }
