package core

// Logger interface for raytracer logging
type Logger interface {
	Infof(format string, args ...interface{})
	Debugf(format string, args ...interface{})
}
