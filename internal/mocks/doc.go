// Package mocks provides hand-written mocks of the service interfaces for
// handler and middleware tests.
//
// Each mock has one function field per method. When a field is nil the
// method returns the mock's default values instead:
//
//	svc := &mocks.MockScheduleService{
//	    LatestFn: func(ctx context.Context, userID uuid.UUID) (*domain.SchedulePlan, error) {
//	        return nil, store.ErrPlanNotFound
//	    },
//	}
package mocks
