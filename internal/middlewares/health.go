package middlewares

import (
	"net/http"

	"github.com/iamsayeed/payroll-console/internal/util"
)

//RuntimeHealthCheck is a sample healt check func
func RuntimeHealthCheck() func(w http.ResponseWriter, r *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		util.WithBodyAndStatus("All OK", http.StatusOK, w)
	}
}
