package httpapi

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"image"
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	qrcode "github.com/skip2/go-qrcode"

	"github.com/unbox-app/unbox/internal/imagex"
	"github.com/unbox-app/unbox/internal/models"
	"github.com/unbox-app/unbox/internal/server/auth"
)

type tokenRequest struct {
	Password string `json:"password"`
}

type tokenResponse struct {
	Token     string `json:"token"`
	ExpiresIn int64  `json:"expiresIn"`
}

func (s *Server) handleToken(w http.ResponseWriter, r *http.Request) {
	var req tokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json body")
		return
	}

	if !auth.VerifyPassword(req.Password, s.cfg.AdminPasswordHash) {
		writeError(w, http.StatusUnauthorized, "wrong password")
		return
	}

	token, err := auth.GenerateToken("admin", s.cfg.JWTSecret, s.cfg.TokenTTL)
	if err != nil {
		s.logger.Error(r.Context(), "token generation failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	writeJSON(w, http.StatusOK, tokenResponse{
		Token:     token,
		ExpiresIn: int64(s.cfg.TokenTTL.Seconds()),
	})
}

type createCardResponse struct {
	Card     *models.GreetingCard `json:"card"`
	ShareURL string               `json:"shareUrl"`
}

func (s *Server) handleCreateCard(w http.ResponseWriter, r *http.Request) {
	var in models.CreateCardInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json body")
		return
	}

	card, err := s.cards.Create(r.Context(), &in)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, createCardResponse{
		Card:     card,
		ShareURL: s.ShareURL(card.ID),
	})
}

func (s *Server) handleGetCard(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	card, err := s.cards.Load(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, card)
}

func (s *Server) handleDeleteCard(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	if err := s.cards.Delete(r.Context(), id); err != nil {
		writeServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// handleCardQR renders the share link of an existing card as a PNG QR code.
func (s *Server) handleCardQR(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	if _, err := s.cards.Get(r.Context(), id); err != nil {
		writeServiceError(w, err)
		return
	}

	png, err := qrcode.Encode(s.ShareURL(id), qrcode.Medium, 512)
	if err != nil {
		s.logger.Error(r.Context(), "qr encoding failed", "id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	w.Write(png)
}

type renderImageRequest struct {
	DataURL  string  `json:"dataUrl"`
	ItemType string  `json:"itemType"`
	Rotation float64 `json:"rotation"`
	FlipH    bool    `json:"flipH"`
	FlipV    bool    `json:"flipV"`
	Crop     *struct {
		X      int `json:"x"`
		Y      int `json:"y"`
		Width  int `json:"width"`
		Height int `json:"height"`
	} `json:"crop"`
}

type renderImageResponse struct {
	DataURL string `json:"dataUrl"`
}

// handleRenderImage runs the creation-flow image pipeline: the client sends
// a raw image plus crop/transform parameters and receives the slot-sized
// JPEG back as a data URL.
func (s *Server) handleRenderImage(w http.ResponseWriter, r *http.Request) {
	var req renderImageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json body")
		return
	}

	raw, err := decodeDataURLPayload(req.DataURL)
	if err != nil {
		writeError(w, http.StatusBadRequest, "dataUrl must be a base64 data url")
		return
	}

	opts := imagex.Options{
		Rotation: req.Rotation,
		FlipH:    req.FlipH,
		FlipV:    req.FlipV,
	}
	if req.Crop != nil {
		opts.Crop = image.Rect(req.Crop.X, req.Crop.Y, req.Crop.X+req.Crop.Width, req.Crop.Y+req.Crop.Height)
	}

	out := imagex.Render(raw, imagex.ItemType(req.ItemType), opts)
	if out == nil {
		writeError(w, http.StatusBadRequest, "image could not be processed")
		return
	}

	writeJSON(w, http.StatusOK, renderImageResponse{DataURL: imagex.DataURL(out)})
}

func decodeDataURLPayload(dataURL string) ([]byte, error) {
	rest, ok := strings.CutPrefix(dataURL, "data:")
	if !ok {
		return nil, errors.New("not a data url")
	}
	meta, b64, ok := strings.Cut(rest, ",")
	if !ok || !strings.HasSuffix(meta, "base64") {
		return nil, errors.New("malformed data url")
	}
	return base64.StdEncoding.DecodeString(b64)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
