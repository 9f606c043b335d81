package notify

import (
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Invitation carries everything needed to render an invitation email.
type Invitation struct {
	To               string
	InviteeName      string
	OrganizationName string
	InviterName      string
	Role             string
	AcceptURL        string
	ExpiresAt        time.Time

	// Locale is a BCP 47 tag or an Accept-Language value; empty or unknown
	// falls back to English.
	Locale string
}

var supported = language.NewMatcher([]language.Tag{
	language.English,
	language.MustParse("pt-BR"),
})

func init() {
	en := language.English
	_ = message.SetString(en, "invitation.subject", "You're invited to join %s")
	_ = message.SetString(en, "invitation.greeting", "Hi %s,")
	_ = message.SetString(en, "invitation.greeting_anonymous", "Hi,")
	_ = message.SetString(en, "invitation.body", "%s has invited you to join %s as %s.")
	_ = message.SetString(en, "invitation.cta", "Accept the invitation here:")
	_ = message.SetString(en, "invitation.expiry", "This link expires on %s.")
	_ = message.SetString(en, "invitation.ignore", "If you weren't expecting this, you can ignore this email.")
	_ = message.SetString(en, "invitation.someone", "Someone")
	_ = message.SetString(en, "role.admin", "an admin")
	_ = message.SetString(en, "role.editor", "an editor")
	_ = message.SetString(en, "role.viewer", "a viewer")

	pt := language.MustParse("pt-BR")
	_ = message.SetString(pt, "invitation.subject", "Você foi convidado para %s")
	_ = message.SetString(pt, "invitation.greeting", "Olá %s,")
	_ = message.SetString(pt, "invitation.greeting_anonymous", "Olá,")
	_ = message.SetString(pt, "invitation.body", "%s convidou você para participar de %s como %s.")
	_ = message.SetString(pt, "invitation.cta", "Aceite o convite aqui:")
	_ = message.SetString(pt, "invitation.expiry", "Este link expira em %s.")
	_ = message.SetString(pt, "invitation.ignore", "Se você não esperava este convite, ignore este email.")
	_ = message.SetString(pt, "invitation.someone", "Alguém")
	_ = message.SetString(pt, "role.admin", "administrador")
	_ = message.SetString(pt, "role.editor", "editor")
	_ = message.SetString(pt, "role.viewer", "leitor")
}

// RenderInvitation produces the localized email for inv.
func RenderInvitation(inv Invitation) Email {
	p := message.NewPrinter(matchLocale(inv.Locale))

	inviter := strings.TrimSpace(inv.InviterName)
	if inviter == "" {
		inviter = p.Sprintf("invitation.someone")
	}

	var b strings.Builder
	if name := strings.TrimSpace(inv.InviteeName); name != "" {
		b.WriteString(p.Sprintf("invitation.greeting", name))
	} else {
		b.WriteString(p.Sprintf("invitation.greeting_anonymous"))
	}
	b.WriteString("\n\n")
	b.WriteString(p.Sprintf("invitation.body", inviter, inv.OrganizationName, roleLabel(p, inv.Role)))
	b.WriteString("\n\n")
	b.WriteString(p.Sprintf("invitation.cta"))
	b.WriteString("\n")
	b.WriteString(inv.AcceptURL)
	b.WriteString("\n\n")
	if !inv.ExpiresAt.IsZero() {
		b.WriteString(p.Sprintf("invitation.expiry", inv.ExpiresAt.UTC().Format("2006-01-02 15:04 MST")))
		b.WriteString("\n")
	}
	b.WriteString(p.Sprintf("invitation.ignore"))
	b.WriteString("\n")

	return Email{
		To:      inv.To,
		Subject: p.Sprintf("invitation.subject", inv.OrganizationName),
		Body:    b.String(),
	}
}

func roleLabel(p *message.Printer, role string) string {
	switch role {
	case "admin":
		return p.Sprintf("role.admin")
	case "editor":
		return p.Sprintf("role.editor")
	case "viewer":
		return p.Sprintf("role.viewer")
	default:
		return role
	}
}

// Locale resolves a language tag or an Accept-Language value to the tag of
// the supported locale emails are rendered in.
func Locale(raw string) string {
	return matchLocale(raw).String()
}

func matchLocale(raw string) language.Tag {
	if strings.TrimSpace(raw) == "" {
		return language.English
	}
	tags, _, err := language.ParseAcceptLanguage(raw)
	if err != nil || len(tags) == 0 {
		return language.English
	}
	_, i, _ := supported.Match(tags...)
	switch i {
	case 1:
		return language.MustParse("pt-BR")
	default:
		return language.English
	}
}
