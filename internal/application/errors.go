package application

import (
	"errors"
	"fmt"

	repo "github.com/oksasatya/bootcamp-directory/internal/domain/repository"
	"github.com/oksasatya/bootcamp-directory/pkg/apperror"
)

// MsgNotAuthorized is the single message returned for every failed session check.
const MsgNotAuthorized = "not authorized to access this route"

// storeErr translates repository sentinels into API errors. Anything else is
// wrapped as internal so the cause reaches the logs but not the client.
func storeErr(err error, notFound, duplicate string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repo.ErrNotFound):
		return apperror.Wrap(apperror.KindNotFound, notFound, err)
	case errors.Is(err, repo.ErrDuplicate) && duplicate != "":
		return apperror.Wrap(apperror.KindConflict, duplicate, err)
	default:
		return apperror.Wrap(apperror.KindInternal, "database error", err)
	}
}

func notFoundMsg(resource, id string) string {
	return fmt.Sprintf("%s not found with id of %s", resource, id)
}
