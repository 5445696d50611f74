package response

import (
	"log/slog"

	"github.com/jinzhu/copier"
)

// copyView maps a read model onto its response struct. The field sets are
// kept in lockstep; a copy failure leaves zero values and is logged.
func copyView(dst, src any) {
	if err := copier.Copy(dst, src); err != nil {
		slog.Error("response mapping failed", "error", err)
	}
}
