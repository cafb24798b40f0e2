// The logger package defines the leveled logger used by the binaries.
// The engine itself never logs.
package logger

import (
	"io"
	"log"
	"os"
)

type Aggregate struct {
	infoLogger  *log.Logger
	warnLogger  *log.Logger
	errorLogger *log.Logger
}

// New returns an initialized Logger that writes to w.
func New(w io.Writer) *Aggregate {
	return &Aggregate{
		infoLogger:  log.New(w, "INFO: ", log.LstdFlags),
		warnLogger:  log.New(w, "WARN: ", log.LstdFlags),
		errorLogger: log.New(w, "ERROR: ", log.LstdFlags),
	}
}

// Info prints an INFO log
func (l *Aggregate) Info(format string, v ...any) {
	l.infoLogger.Printf(format, v...)
}

// Warn prints a WARN log
func (l *Aggregate) Warn(format string, v ...any) {
	l.warnLogger.Printf(format, v...)
}

// Error prints an ERROR log
func (l *Aggregate) Error(format string, v ...any) {
	l.errorLogger.Printf(format, v...)
}

// Init initializes the logger and the file it prints to.
func Init(filePath string) (*Aggregate, *os.File) {
	file, err := os.OpenFile(filePath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0666)
	if err != nil {
		panic(err)
	}
	return New(file), file
}
