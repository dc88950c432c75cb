package identity

// Error codes surfaced to callers. Provider-specific codes collapse into
// this fixed set; the messages are the user-facing strings.
const (
	CodeInvalidCredentials = "INVALID_CREDENTIALS"
	CodeEmailInUse         = "EMAIL_IN_USE"
	CodeWeakPassword       = "WEAK_PASSWORD"
	CodeTooManyAttempts    = "TOO_MANY_ATTEMPTS"
	CodeNetwork            = "NETWORK"
	CodeGeneric            = "GENERIC"
)

// AuthError is the typed result of a failed identity operation.
type AuthError struct {
	Code    string
	Message string
	Cause   error
}

func (e *AuthError) Error() string {
	return e.Message
}

func (e *AuthError) Unwrap() error {
	return e.Cause
}

var authMessages = map[string]string{
	CodeInvalidCredentials: "Credenciais inválidas",
	CodeEmailInUse:         "E-mail já cadastrado",
	CodeWeakPassword:       "A senha deve ter pelo menos 6 caracteres",
	CodeTooManyAttempts:    "Muitas tentativas. Tente novamente mais tarde.",
	CodeNetwork:            "Erro de conexão. Verifique sua internet.",
	CodeGeneric:            "Erro ao fazer login",
}

func newAuthError(code string, cause error) *AuthError {
	msg, ok := authMessages[code]
	if !ok {
		code, msg = CodeGeneric, authMessages[CodeGeneric]
	}
	return &AuthError{Code: code, Message: msg, Cause: cause}
}

// providerCode maps the raw provider error identifier to one of the fixed
// codes above. Unknown identifiers collapse into CodeGeneric.
func providerCode(raw string) string {
	switch raw {
	case "EMAIL_NOT_FOUND", "INVALID_PASSWORD", "INVALID_LOGIN_CREDENTIALS":
		return CodeInvalidCredentials
	case "EMAIL_EXISTS":
		return CodeEmailInUse
	case "WEAK_PASSWORD":
		return CodeWeakPassword
	case "TOO_MANY_ATTEMPTS_TRY_LATER":
		return CodeTooManyAttempts
	default:
		return CodeGeneric
	}
}
