package handlers

import (
	"encoding/base64"
	"net/http"
)

// Flash is a one-shot message carried across a redirect
type Flash struct {
	Message  string
	Category string
}

// setFlash stores a flash message in a short-lived cookie
func setFlash(w http.ResponseWriter, message, category string) {
	value := base64.URLEncoding.EncodeToString([]byte(category + "|" + message))
	http.SetCookie(w, &http.Cookie{
		Name:     FlashCookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   60,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// popFlash reads and clears the flash cookie, if any
func popFlash(w http.ResponseWriter, r *http.Request) *Flash {
	cookie, err := r.Cookie(FlashCookieName)
	if err != nil || cookie.Value == "" {
		return nil
	}

	http.SetCookie(w, &http.Cookie{
		Name:     FlashCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})

	decoded, err := base64.URLEncoding.DecodeString(cookie.Value)
	if err != nil {
		return nil
	}

	category, message := "info", string(decoded)
	for i := 0; i < len(decoded); i++ {
		if decoded[i] == '|' {
			category = string(decoded[:i])
			message = string(decoded[i+1:])
			break
		}
	}

	return &Flash{Message: message, Category: category}
}
