package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

type client struct {
	BaseURL   string
	Token     string
	OutFormat string // "json" | "text"
	HTTP      *http.Client
}

func (c *client) do(method, path string, body []byte, contentType string) (int, []byte, error) {
	url := strings.TrimRight(c.BaseURL, "/") + path
	req, err := http.NewRequest(method, url, bytes.NewReader(body))
	if err != nil {
		return 0, nil, err
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()
	b, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, b, nil
}

func (c *client) doJSON(method, path string, payload any) (int, []byte, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return 0, nil, err
	}
	return c.do(method, path, b, "application/json")
}

func (c *client) print(status int, body []byte) {
	if c.OutFormat == "json" {
		var v any
		if json.Unmarshal(body, &v) == nil {
			p, _ := json.MarshalIndent(v, "", "  ")
			fmt.Println(string(p))
			return
		}
	}
	if len(body) > 0 {
		fmt.Println(string(body))
	} else {
		fmt.Printf("status=%d\n", status)
	}
}

func main() {
	var (
		baseURL = envOr("CVISION_URL", "http://localhost:8080")
		token   = envOr("CVISION_TOKEN", "")
		out     = envOr("CVISION_OUT", "text")
		timeout = 90 * time.Second // upload + análisis pueden tardar
	)

	root := &cobra.Command{
		Use:   "cvision",
		Short: "CLI para operar el servicio CVision",
	}
	root.PersistentFlags().StringVar(&baseURL, "url", baseURL, "URL base del servicio (env CVISION_URL)")
	root.PersistentFlags().StringVar(&token, "token", token, "Access token (env CVISION_TOKEN)")
	root.PersistentFlags().StringVar(&out, "out", out, "Formato de salida: json|text")

	cl := &client{HTTP: &http.Client{Timeout: timeout}}
	root.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		cl.BaseURL = baseURL
		cl.Token = token
		cl.OutFormat = out
	}

	// health
	healthCmd := &cobra.Command{
		Use:   "health",
		Short: "Estado del servicio (GET /readyz)",
		RunE: func(cmd *cobra.Command, args []string) error {
			status, body, err := cl.do("GET", "/readyz", nil, "")
			if err != nil {
				return err
			}
			cl.print(status, body)
			if status != http.StatusOK {
				return fmt.Errorf("service not ready: status=%d", status)
			}
			return nil
		},
	}

	// grupo auth
	authCmd := &cobra.Command{Use: "auth", Short: "Registro y sesión"}

	var otpEmail string
	sendOTPCmd := &cobra.Command{
		Use:   "send-otp",
		Short: "Enviar código de verificación al email",
		RunE: func(cmd *cobra.Command, args []string) error {
			if otpEmail == "" {
				return fmt.Errorf("--email es requerido")
			}
			status, body, err := cl.doJSON("POST", "/v1/auth/send-otp", map[string]string{"email": otpEmail})
			if err != nil {
				return err
			}
			if status/100 != 2 {
				return fmt.Errorf("send-otp falló: status=%d body=%s", status, string(body))
			}
			cl.print(status, body)
			return nil
		},
	}
	sendOTPCmd.Flags().StringVar(&otpEmail, "email", "", "Email de destino")

	var regName, regEmail, regPassword, regOTP string
	registerCmd := &cobra.Command{
		Use:   "register",
		Short: "Registrar cuenta con código OTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			if regEmail == "" || regPassword == "" || regOTP == "" {
				return fmt.Errorf("--email, --password y --otp son requeridos")
			}
			status, body, err := cl.doJSON("POST", "/v1/auth/register", map[string]string{
				"name":     regName,
				"email":    regEmail,
				"password": regPassword,
				"otp":      regOTP,
			})
			if err != nil {
				return err
			}
			if status/100 != 2 {
				return fmt.Errorf("register falló: status=%d body=%s", status, string(body))
			}
			cl.print(status, body)
			return nil
		},
	}
	registerCmd.Flags().StringVar(&regName, "name", "", "Nombre")
	registerCmd.Flags().StringVar(&regEmail, "email", "", "Email")
	registerCmd.Flags().StringVar(&regPassword, "password", "", "Password")
	registerCmd.Flags().StringVar(&regOTP, "otp", "", "Código recibido por email")

	var loginEmail, loginPassword string
	loginCmd := &cobra.Command{
		Use:   "login",
		Short: "Iniciar sesión y obtener tokens",
		RunE: func(cmd *cobra.Command, args []string) error {
			if loginEmail == "" || loginPassword == "" {
				return fmt.Errorf("--email y --password son requeridos")
			}
			status, body, err := cl.doJSON("POST", "/v1/auth/login", map[string]string{
				"email":    loginEmail,
				"password": loginPassword,
			})
			if err != nil {
				return err
			}
			if status/100 != 2 {
				return fmt.Errorf("login falló: status=%d body=%s", status, string(body))
			}
			cl.print(status, body)
			return nil
		},
	}
	loginCmd.Flags().StringVar(&loginEmail, "email", "", "Email")
	loginCmd.Flags().StringVar(&loginPassword, "password", "", "Password")

	meCmd := &cobra.Command{
		Use:   "me",
		Short: "Datos de la cuenta autenticada",
		RunE: func(cmd *cobra.Command, args []string) error {
			if cl.Token == "" {
				return fmt.Errorf("falta access token (flag --token o env CVISION_TOKEN)")
			}
			status, body, err := cl.do("GET", "/v1/me", nil, "")
			if err != nil {
				return err
			}
			if status/100 != 2 {
				return fmt.Errorf("me falló: status=%d body=%s", status, string(body))
			}
			cl.print(status, body)
			return nil
		},
	}

	// grupo resumes
	resumesCmd := &cobra.Command{Use: "resumes", Short: "Operaciones sobre CVs"}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "Listar CVs propios",
		RunE: func(cmd *cobra.Command, args []string) error {
			if cl.Token == "" {
				return fmt.Errorf("falta access token (flag --token o env CVISION_TOKEN)")
			}
			status, body, err := cl.do("GET", "/v1/resumes", nil, "")
			if err != nil {
				return err
			}
			if status/100 != 2 {
				return fmt.Errorf("list falló: status=%d body=%s", status, string(body))
			}
			cl.print(status, body)
			return nil
		},
	}

	var uploadFile string
	uploadCmd := &cobra.Command{
		Use:   "upload",
		Short: "Subir un CV (.pdf o .docx)",
		RunE: func(cmd *cobra.Command, args []string) error {
			if cl.Token == "" {
				return fmt.Errorf("falta access token (flag --token o env CVISION_TOKEN)")
			}
			if uploadFile == "" {
				return fmt.Errorf("--file es requerido")
			}
			body, contentType, err := buildMultipart(uploadFile)
			if err != nil {
				return err
			}
			status, respBody, err := cl.do("POST", "/v1/resumes", body, contentType)
			if err != nil {
				return err
			}
			if status/100 != 2 {
				return fmt.Errorf("upload falló: status=%d body=%s", status, string(respBody))
			}
			cl.print(status, respBody)
			return nil
		},
	}
	uploadCmd.Flags().StringVar(&uploadFile, "file", "", "Path del archivo a subir")

	authCmd.AddCommand(sendOTPCmd, registerCmd, loginCmd)
	resumesCmd.AddCommand(listCmd, uploadCmd)
	root.AddCommand(healthCmd, authCmd, meCmd, resumesCmd)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}
}

func buildMultipart(path string) ([]byte, string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, "", err
	}
	defer f.Close()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("file", filepath.Base(path))
	if err != nil {
		return nil, "", err
	}
	if _, err := io.Copy(part, f); err != nil {
		return nil, "", err
	}
	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return buf.Bytes(), w.FormDataContentType(), nil
}

func envOr(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
