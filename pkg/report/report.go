// Package report writes finished campaign results to files and terminals.
// Sinks only read the averaged curves; they never change a Result.
package report

import (
	"errors"
	"fmt"

	"BERSim/internel/utils"
	"BERSim/pkg/async"
	"BERSim/pkg/sim"

	"github.com/charmbracelet/log"
)

type Sink interface {
	Name() string
	Write(result *sim.Result) error
}

// Publish hands result to every sink concurrently and joins their errors.
func Publish(result *sim.Result, logger *log.Logger, sinks ...Sink) error {
	logger = utils.OrDiscard(logger).WithPrefix("report")

	promises := make([]<-chan error, len(sinks))
	for i, sink := range sinks {
		promises[i] = async.Promise(func() error {
			if err := sink.Write(result); err != nil {
				return fmt.Errorf("%s: %w", sink.Name(), err)
			}
			logger.Info("report written", "sink", sink.Name())
			return nil
		})
	}
	return errors.Join(async.Await(async.GatherN(promises...))...)
}
