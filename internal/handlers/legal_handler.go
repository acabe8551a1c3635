package handlers

import "github.com/gofiber/fiber/v2"

// LegalHandler serves the static legal pages the mobile stores require.
type LegalHandler struct{}

func NewLegalHandler() *LegalHandler {
	return &LegalHandler{}
}

func (h *LegalHandler) PrivacyPolicy(c *fiber.Ctx) error {
	c.Set("Content-Type", "text/html; charset=utf-8")
	return c.SendString(`<!DOCTYPE html>
<html>
<head><title>Privacy Policy - SafeZone</title></head>
<body>
<h1>Privacy Policy</h1>
<p>SafeZone stores the account data you provide (email, name) and the
incident reports, survey responses and interactions you submit. Anonymous
reports never expose your identity to other citizens. Data is not sold or
shared with third parties outside the responding government offices.</p>
</body>
</html>`)
}

func (h *LegalHandler) TermsOfService(c *fiber.Ctx) error {
	c.Set("Content-Type", "text/html; charset=utf-8")
	return c.SendString(`<!DOCTYPE html>
<html>
<head><title>Terms of Service - SafeZone</title></head>
<body>
<h1>Terms of Service</h1>
<p>Use SafeZone to report real incidents. False, abusive or spam reports
may lead to account suspension. Report status decisions are made by the
responsible government offices.</p>
</body>
</html>`)
}
