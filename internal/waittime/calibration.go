package waittime

import (
	"fmt"
	"math"
	"sync/atomic"

	"github.com/queuewise/mlservice/internal/types"
)

// minTrainingRecords is the smallest history that produces a usable calibration
const minTrainingRecords = 30

// snapshot is an immutable, versioned view of the calibration table
type snapshot struct {
	version  uint64
	services map[string]types.ServiceCalibration
}

// SnapshotStore publishes calibration tables as atomic snapshots.
// Prediction calls read the current snapshot without locking; training
// builds a complete new table and replaces the pointer in one step, so
// readers never observe a partially updated record.
type SnapshotStore struct {
	current atomic.Pointer[snapshot]
}

// NewSnapshotStore creates an empty snapshot store
func NewSnapshotStore() *SnapshotStore {
	s := &SnapshotStore{}
	s.current.Store(&snapshot{version: 0, services: map[string]types.ServiceCalibration{}})
	return s
}

// Get returns the calibration for a service, if one exists
func (s *SnapshotStore) Get(serviceID string) (types.ServiceCalibration, bool) {
	snap := s.current.Load()
	cal, ok := snap.services[serviceID]
	return cal, ok
}

// All returns every calibration in the current snapshot
func (s *SnapshotStore) All() []types.ServiceCalibration {
	snap := s.current.Load()
	out := make([]types.ServiceCalibration, 0, len(snap.services))
	for _, cal := range snap.services {
		out = append(out, cal)
	}
	return out
}

// Version returns the current snapshot version
func (s *SnapshotStore) Version() uint64 {
	return s.current.Load().version
}

// Reset replaces the current snapshot with an empty one
func (s *SnapshotStore) Reset() {
	old := s.current.Load()
	s.current.Store(&snapshot{
		version:  old.version + 1,
		services: map[string]types.ServiceCalibration{},
	})
}

// publish installs a new calibration table
func (s *SnapshotStore) publish(services map[string]types.ServiceCalibration) {
	old := s.current.Load()
	s.current.Store(&snapshot{
		version:  old.version + 1,
		services: services,
	})
}

// Train computes per-service calibrations from historical wait records and
// publishes them as a new snapshot. It is an offline operation, never called
// from the prediction path. Requires at least 30 records.
func (e *Estimator) Train(records []types.WaitHistoryRecord) (int, error) {
	if len(records) < minTrainingRecords {
		return 0, fmt.Errorf("need at least %d records to train, got %d", minTrainingRecords, len(records))
	}

	byService := make(map[string][]types.WaitHistoryRecord)
	for _, r := range records {
		if r.ServiceID == "" || r.QueuePosition < 1 {
			continue
		}
		byService[r.ServiceID] = append(byService[r.ServiceID], r)
	}

	services := make(map[string]types.ServiceCalibration, len(byService))
	for serviceID, recs := range byService {
		services[serviceID] = calibrate(serviceID, recs)
	}

	e.calibrations.publish(services)

	e.logger.Info().
		Int("records", len(records)).
		Int("services", len(services)).
		Uint64("version", e.calibrations.Version()).
		Msg("wait time calibration trained")

	return len(services), nil
}

// calibrate derives a single service's calibration from its records
func calibrate(serviceID string, recs []types.WaitHistoryRecord) types.ServiceCalibration {
	var waitSum, posSum float64
	for _, r := range recs {
		waitSum += r.ActualWaitTime
		posSum += float64(r.QueuePosition)
	}
	n := float64(len(recs))
	meanWait := waitSum / n
	meanPos := posSum / n

	avgService := int(meanWait / meanPos)
	if avgService < 5 {
		avgService = 5
	}

	var sqSum float64
	for _, r := range recs {
		d := r.ActualWaitTime - meanWait
		sqSum += d * d
	}
	stdWait := math.Sqrt(sqSum / n)

	return types.ServiceCalibration{
		ServiceID:             serviceID,
		AverageServiceMinutes: avgService,
		SampleCount:           len(recs),
		MeanWait:              meanWait,
		StdWait:               stdWait,
	}
}
