package logging

import (
	"fmt"
	"os"
)

// These ease porting small tools off the standard 'log' package. Prefer the
// explicitly leveled API, e.g. log.Error(), and return errors instead of
// exiting in library code.

func (log *Logger) Fatal(v ...interface{}) {
	log.Log(Error, 1, "%s", fmt.Sprint(v...))
	os.Exit(1)
}

func (log *Logger) Fatalf(format string, v ...interface{}) {
	log.Log(Error, 1, format, v...)
	os.Exit(1)
}
