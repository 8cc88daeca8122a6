package http

import (
	"errors"
	"net/http"

	"github.com/google/uuid"

	"github.com/vmi98/api-analytics/internal/shared/svcerrors"
	"github.com/vmi98/api-analytics/internal/stores"
)

type generateKeyHandler struct {
	apiKeyStore stores.APIKeyStore
}

func NewGenerateKeyHandler(apiKeyStore stores.APIKeyStore) AppHttpHandler {
	return &generateKeyHandler{
		apiKeyStore: apiKeyStore,
	}
}

// Handle processes POST /generate_key requests.
func (h *generateKeyHandler) Handle(w http.ResponseWriter, r *http.Request) error {
	key := uuid.NewString()

	if err := h.apiKeyStore.Create(r.Context(), key); err != nil {
		if errors.Is(err, stores.ErrAPIKeyAlreadyExists) {
			return svcerrors.NewResourceConflictError(codeKeyIssueFailed, "key collision, retry", err)
		}
		return svcerrors.NewInternalError(codeKeyIssueFailed, err)
	}

	return writeJSONResponse(w, http.StatusCreated, map[string]string{"api_key": key})
}
