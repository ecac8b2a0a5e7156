package mockapi

import (
	"errors"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"github.com/go-chi/oauth"
	"github.com/go-chi/render"
	"golang.org/x/crypto/bcrypt"

	"github.com/BryanM518/encuestas-cli/httpx"
	"github.com/BryanM518/encuestas-cli/log"
)

// RegisterUser seeds an account without going through HTTP, for tests.
func (s *Server) RegisterUser(username, password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[username] = hash
	return nil
}

func (s *Server) register(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Username string `json:"username"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := render.DecodeJSON(r.Body, &body); err != nil {
		httpx.LogStatusMsg(w, r, http.StatusBadRequest, log.DebugLevel, "auth.register.parse_body", "invalid request body")
		return
	}
	if body.Username == "" || body.Password == "" {
		httpx.Detail(w, r, http.StatusUnprocessableEntity, "username and password are required")
		return
	}

	s.mu.Lock()
	_, exists := s.users[body.Username]
	s.mu.Unlock()
	if exists {
		httpx.Detail(w, r, http.StatusConflict, "username already registered")
		return
	}

	if err := s.RegisterUser(body.Username, body.Password); err != nil {
		httpx.LogInternalError(w, r, "auth.register.hash", err)
		return
	}
	w.WriteHeader(http.StatusCreated)
	render.JSON(w, r, map[string]string{"username": body.Username})
}

// token handles the password grant. The bearer server wants a form body
// with grant_type=password, which is exactly what the client sends.
func (s *Server) token(w http.ResponseWriter, r *http.Request) {
	s.bearer.UserCredentials(w, r)
}

// refresh accepts "Refresh <token>" in the authorization header and
// replays it through the bearer server as a refresh_token grant.
func (s *Server) refresh(w http.ResponseWriter, r *http.Request) {
	auth := r.Header.Get("authorization")
	match := regexp.MustCompile(`(?i)^refresh\s+(.*)`).FindStringSubmatch(auth)
	if len(match) == 0 {
		httpx.Detail(w, r, http.StatusUnauthorized, "missing refresh token")
		return
	}

	body := url.Values{
		"grant_type":    {"refresh_token"},
		"refresh_token": {match[1]},
	}
	req, err := http.NewRequest(http.MethodPost, "/", strings.NewReader(body.Encode()))
	if err != nil {
		httpx.LogInternalError(w, r, "auth.refresh.new_request", err)
		return
	}
	req.Header.Set("content-type", "application/x-www-form-urlencoded")
	req.Header.Set("content-length", strconv.Itoa(len(body.Encode())))

	resp := httpx.NewResponseBuffer()
	s.bearer.UserCredentials(resp, req)
	resp.Flush(w)
}

type credentialsVerifier struct {
	server *Server
}

func (cs *credentialsVerifier) ValidateUser(username, password, scope string, r *http.Request) error {
	cs.server.mu.Lock()
	hash, ok := cs.server.users[username]
	cs.server.mu.Unlock()
	if !ok {
		return errors.New("unknown user")
	}
	return bcrypt.CompareHashAndPassword(hash, []byte(password))
}

func (cs *credentialsVerifier) StoreTokenID(tokenType oauth.TokenType, credential, tokenID, refreshTokenID string) error {
	return nil
}

func (cs *credentialsVerifier) ValidateTokenID(tokenType oauth.TokenType, credential, tokenID, refreshTokenID string) error {
	cs.server.mu.Lock()
	_, ok := cs.server.users[credential]
	cs.server.mu.Unlock()
	if !ok {
		return errors.New("unknown user")
	}
	return nil
}

func (*credentialsVerifier) AddClaims(tokenType oauth.TokenType, credential, tokenID, scope string, r *http.Request) (map[string]string, error) {
	return map[string]string{"roles": "owner"}, nil
}

func (*credentialsVerifier) AddProperties(tokenType oauth.TokenType, credential, tokenID, scope string, r *http.Request) (map[string]string, error) {
	return map[string]string{}, nil
}

func (*credentialsVerifier) ValidateClient(clientID, clientSecret, scope string, r *http.Request) error {
	return errors.New("not supported")
}
