package logger

import (
	"io"
	"os"
	"time"

	"github.com/sirupsen/logrus"
)

// New builds the process-wide JSON logger. Unknown levels fall back to info.
func New(level string, loc *time.Location) *logrus.Logger {
	return NewWithWriter(os.Stdout, level, loc)
}

// NewWithWriter is New with an explicit output, mostly for tests.
func NewWithWriter(w io.Writer, level string, loc *time.Location) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(w)
	log.SetFormatter(&locationFormatter{
		loc: loc,
		next: &logrus.JSONFormatter{
			TimestampFormat: time.RFC3339Nano,
			FieldMap: logrus.FieldMap{
				logrus.FieldKeyTime: "ts",
			},
		},
	})

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	log.SetLevel(lvl)
	return log
}

// locationFormatter renders entry timestamps in the configured location.
type locationFormatter struct {
	loc  *time.Location
	next logrus.Formatter
}

func (f *locationFormatter) Format(e *logrus.Entry) ([]byte, error) {
	if f.loc != nil {
		e.Time = e.Time.In(f.loc)
	}
	return f.next.Format(e)
}
