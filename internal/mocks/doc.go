// Package mocks provides centralized mock implementations for testing.
//
// Service mocks use function fields: set the field for the method a test
// exercises and leave the rest nil to return the default values.
//
//	chartSvc := &mocks.MockChartService{
//	    ComputeChartFn: func(ctx context.Context, req service.ChartRequest) (*domain.BirthChart, error) {
//	        return nil, domain.ErrInvalidLocation
//	    },
//	}
//
// The engine and store mocks are testify mocks, for tests that assert on
// the exact calls made.
package mocks
