package email

import (
	"bytes"
	"fmt"
	htemplate "html/template"
	ttemplate "text/template"
	"time"
)

// otpVars variables del template del código de verificación.
type otpVars struct {
	Name string
	Code string
	TTL  string
}

const otpSubject = "Tu código de verificación"

const otpHTML = `<!doctype html>
<html>
  <body style="font-family: Arial, sans-serif; color: #333;">
    <h2>Verificación de cuenta</h2>
    <p>{{if .Name}}Hola {{.Name}}, usá{{else}}Usá{{end}} este código para completar tu registro:</p>
    <p style="font-size: 28px; letter-spacing: 6px; font-weight: bold;">{{.Code}}</p>
    <p>El código vence en {{.TTL}}. Si no solicitaste este registro, ignorá este mensaje.</p>
  </body>
</html>`

const otpText = `Verificación de cuenta
{{if .Name}}
Hola {{.Name}},
{{end}}
Tu código: {{.Code}}

El código vence en {{.TTL}}. Si no solicitaste este registro, ignorá este mensaje.
`

var (
	otpHTMLTmpl = htemplate.Must(htemplate.New("otp_html").Parse(otpHTML))
	otpTextTmpl = ttemplate.Must(ttemplate.New("otp_text").Parse(otpText))
)

// SendOTP renderiza y envía el código de verificación.
func SendOTP(s Sender, to, name, code string, ttl time.Duration) error {
	vars := otpVars{Name: name, Code: code, TTL: formatTTL(ttl)}

	var html, text bytes.Buffer
	if err := otpHTMLTmpl.Execute(&html, vars); err != nil {
		return fmt.Errorf("%w: %v", ErrTemplateRender, err)
	}
	if err := otpTextTmpl.Execute(&text, vars); err != nil {
		return fmt.Errorf("%w: %v", ErrTemplateRender, err)
	}

	return s.Send(to, otpSubject, html.String(), text.String())
}

func formatTTL(ttl time.Duration) string {
	if m := int(ttl.Minutes()); m >= 1 {
		return fmt.Sprintf("%d minutos", m)
	}
	return fmt.Sprintf("%d segundos", int(ttl.Seconds()))
}
