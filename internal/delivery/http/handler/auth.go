package handler

import (
	"encoding/json"
	"net/http"

	"github.com/user/boxrec-service/internal/delivery/http/request"
	"github.com/user/boxrec-service/internal/delivery/http/response"
	"github.com/user/boxrec-service/internal/session"
)

// HandleAuth logs in upstream and hands the session back as cookies and
// as the session header.
func (h *Handler) HandleAuth(w http.ResponseWriter, r *http.Request) {
	var req request.AuthRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	sess, err := h.auth.Authenticate(r.Context(), req.Username, req.Password)
	if err != nil {
		h.writeError(w, r, err, authMessages)
		return
	}

	for _, c := range sess.Cookies {
		http.SetCookie(w, &http.Cookie{
			Name:     c.Name,
			Value:    c.Value,
			Path:     "/",
			MaxAge:   int(h.cookies.MaxAge.Seconds()),
			HttpOnly: true,
			Secure:   h.cookies.Secure,
			SameSite: http.SameSiteStrictMode,
		})
	}
	w.Header().Set(session.Header, sess.Token.String())

	h.writeJSON(w, http.StatusOK, response.AuthResponse{
		Success: true,
		Message: "Successfully authenticated with BoxRec",
	})
}
