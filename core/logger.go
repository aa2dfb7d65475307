package core

// Logger is any leveled logger the app components can report through.
// Implementations may inspect args for well-known types (e.g. a student
// record to tag the reported person).
type Logger interface {
	Debug(msg string, args ...interface{})
	Info(msg string, args ...interface{})
	Warn(msg string, args ...interface{})
	Error(msg string, args ...interface{})
	Fatal(msg string, args ...interface{})
}
