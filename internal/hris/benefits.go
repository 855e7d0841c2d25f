package hris

import (
	"context"
	"net/http"
	"sync"

	log "github.com/sirupsen/logrus"
)

// GetBenefits fetches the SSS, PhilHealth and Pag-IBIG contribution records
// together. The three GETs run concurrently with an all-complete join; a
// failed leg logs and falls back to an empty record so one missing benefit
// never fails the whole batch.
func (c *client) GetBenefits(ctx context.Context, employeeID int) (*Benefits, error) {
	contextLogger := log.WithContext(ctx)

	benefits := &Benefits{}
	legs := []struct {
		path string
		dest *BenefitRecord
	}{
		{path: "/benefits/sss", dest: &benefits.SSS},
		{path: "/benefits/philhealth", dest: &benefits.PhilHealth},
		{path: "/benefits/pagibig", dest: &benefits.PagIbig},
	}

	var wg sync.WaitGroup
	for _, leg := range legs {
		wg.Add(1)
		go func(path string, dest *BenefitRecord) {
			defer wg.Done()
			var collection []BenefitRecord
			if err := c.do(ctx, "GetBenefits"+path, http.MethodGet, c.URL+path, nil, &collection); err != nil {
				contextLogger.WithError(err).Infof("benefit lookup %s failed, falling back to empty record", path)
				return
			}
			for i := range collection {
				if collection[i].Employee == employeeID {
					*dest = collection[i]
					return
				}
			}
		}(leg.path, leg.dest)
	}
	wg.Wait()

	return benefits, nil
}
