package contactclient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
)

// FallbackErrorMessage is shown when a failed response carries no message.
const FallbackErrorMessage = "Failed to send message"

const (
	defaultResetDelay = 3 * time.Second
	defaultTimeout    = 10 * time.Second
)

// ErrSubmitDisabled is returned while a submission is in flight or its
// success state has not yet been reset.
var ErrSubmitDisabled = errors.New("contactclient: submit disabled")

// State is the form's submission state.
type State string

const (
	StateIdle       State = "idle"
	StateSubmitting State = "submitting"
	StateSuccess    State = "success"
	StateError      State = "error"
)

// BudgetOptions lists the selectable budget estimates.
var BudgetOptions = []string{
	"Under $50K",
	"$50K - $100K",
	"$100K - $250K",
	"$250K - $500K",
	"$500K+",
}

// ProjectTypeOptions lists the selectable project types.
var ProjectTypeOptions = []string{
	"AI & Machine Learning",
	"Web Development",
	"App Development",
	"Blockchain",
	"Enterprise Platform",
	"Custom Solution",
}

// Form holds the values typed into the contact form.
type Form struct {
	FullName     string
	Email        string
	Phone        string
	Company      string
	Budget       string
	ProjectTypes []string
	Message      string
}

// ToggleProjectType selects t if it is not selected and deselects it otherwise.
func (f *Form) ToggleProjectType(t string) {
	for i, existing := range f.ProjectTypes {
		if existing == t {
			f.ProjectTypes = append(f.ProjectTypes[:i:i], f.ProjectTypes[i+1:]...)
			return
		}
	}
	f.ProjectTypes = append(f.ProjectTypes, t)
}

// HasProjectType reports whether t is selected.
func (f *Form) HasProjectType(t string) bool {
	for _, existing := range f.ProjectTypes {
		if existing == t {
			return true
		}
	}
	return false
}

// payload is what the endpoint accepts. Budget and project types stay local.
type payload struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Company string `json:"company"`
	Message string `json:"message"`
}

type response struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// SubmitError carries the message the server (or the fallback) reported.
type SubmitError struct {
	Message string
	Status  int
}

func (e *SubmitError) Error() string {
	return e.Message
}

// Client collects form input and submits it to the contact endpoint.
// Set OnSuccess, ResetDelay and Timeout before the first Submit.
type Client struct {
	endpoint string

	// OnSuccess runs once per accepted submission.
	OnSuccess  func()
	ResetDelay time.Duration
	Timeout    time.Duration

	mu         sync.Mutex
	form       Form
	state      State
	errMsg     string
	resetTimer *time.Timer
}

// NewClient returns a client posting to {siteURL}/api/contact.
func NewClient(siteURL string) *Client {
	return &Client{
		endpoint:   strings.TrimRight(siteURL, "/") + "/api/contact",
		ResetDelay: defaultResetDelay,
		Timeout:    defaultTimeout,
		state:      StateIdle,
	}
}

// Update edits the form under the client's lock.
func (c *Client) Update(fn func(f *Form)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fn(&c.form)
}

// Form returns a copy of the current values.
func (c *Client) Form() Form {
	c.mu.Lock()
	defer c.mu.Unlock()
	f := c.form
	f.ProjectTypes = append([]string(nil), c.form.ProjectTypes...)
	return f
}

// State returns the current submission state.
func (c *Client) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Error returns the message of the last failed submission, if the form is
// in the error state.
func (c *Client) Error() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != StateError {
		return ""
	}
	return c.errMsg
}

// Submit posts the form. The state moves to submitting before the request is
// sent, so a concurrent Submit gets ErrSubmitDisabled.
func (c *Client) Submit(ctx context.Context) error {
	c.mu.Lock()
	if c.state == StateSubmitting || c.state == StateSuccess {
		c.mu.Unlock()
		return ErrSubmitDisabled
	}
	c.state = StateSubmitting
	c.errMsg = ""
	body := payload{
		Name:    c.form.FullName,
		Email:   c.form.Email,
		Phone:   c.form.Phone,
		Company: c.form.Company,
		Message: c.form.Message,
	}
	c.mu.Unlock()

	if err := c.send(ctx, body); err != nil {
		c.fail(err)
		return err
	}

	c.mu.Lock()
	c.state = StateSuccess
	c.resetTimer = time.AfterFunc(c.ResetDelay, c.reset)
	onSuccess := c.OnSuccess
	c.mu.Unlock()

	if onSuccess != nil {
		onSuccess()
	}
	return nil
}

// Close cancels a pending reset.
func (c *Client) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.resetTimer != nil {
		c.resetTimer.Stop()
	}
}

func (c *Client) send(ctx context.Context, body payload) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	timeout := c.Timeout
	if deadline, ok := ctx.Deadline(); ok {
		if remaining := time.Until(deadline); timeout <= 0 || remaining < timeout {
			timeout = remaining
		}
	}

	agent := fiber.Post(c.endpoint).JSON(body)
	if timeout > 0 {
		agent = agent.Timeout(timeout)
	}
	status, raw, errs := agent.Bytes()
	if len(errs) > 0 {
		return fmt.Errorf("send contact form: %w", errors.Join(errs...))
	}

	var resp response
	if err := json.Unmarshal(raw, &resp); err != nil {
		return &SubmitError{Message: FallbackErrorMessage, Status: status}
	}
	if status < 200 || status > 299 || !resp.Success {
		msg := resp.Message
		if msg == "" {
			msg = FallbackErrorMessage
		}
		return &SubmitError{Message: msg, Status: status}
	}
	return nil
}

func (c *Client) fail(err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = StateError
	var submitErr *SubmitError
	if errors.As(err, &submitErr) {
		c.errMsg = submitErr.Message
		return
	}
	c.errMsg = err.Error()
}

func (c *Client) reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.form = Form{}
	c.state = StateIdle
	c.resetTimer = nil
}
