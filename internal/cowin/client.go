package cowin

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/pulkitkochar/Book-Vaccine/internal/entities"
	apperrors "github.com/pulkitkochar/Book-Vaccine/internal/errors"
)

const (
	DefaultBaseURL = "https://cdn-api.co-vin.in/api/v2"

	calendarByDistrictPath = "/appointment/sessions/calendarByDistrict"
	calendarByPinPath      = "/appointment/sessions/calendarByPin"
	schedulePath           = "/appointment/schedule"
	beneficiariesPath      = "/appointment/beneficiaries"
	recaptchaPath          = "/auth/getRecaptcha"
	generateOTPPath        = "/auth/generateMobileOTP"
	validateOTPPath        = "/auth/validateMobileOtp"
	statesPath             = "/admin/location/states"
	districtsPath          = "/admin/location/districts/%d"

	// The OTP endpoint requires this fixed application secret.
	otpSecret = "U2FsdGVkX1+z/4Nr9nta+2DrVJSv7KS6VoQUSQ1ZXYDx/CJUkWxFYG6P3iM/VW+6jLQ9RDQVzp/RcZ8kbT41xw=="

	// DateFormat is the dd-mm-yyyy format the calendar endpoints expect.
	DateFormat = "02-01-2006"
)

// The API rejects requests without a browser-looking User-Agent.
var browserAgents = []string{
	"Mozilla/5.0 (Windows NT 6.1; WOW64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/56.0.2924.76 Safari/537.36",
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/90.0.4430.212 Safari/537.36",
}

// Client is the CoWIN API access layer. All calls block with the client's
// timeout as the upper bound; none may hang indefinitely.
type Client struct {
	BaseURL string
	HTTP    *http.Client

	token string
}

func NewClient(timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		BaseURL: DefaultBaseURL,
		HTTP:    &http.Client{Timeout: timeout},
	}
}

// SetToken installs the bearer token used on authenticated calls. Called
// once before the poll loop starts; never concurrently with requests.
func (c *Client) SetToken(token string) {
	c.token = token
}

func (c *Client) newRequest(ctx context.Context, method, path string, body interface{}) (*http.Request, error) {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		reader = bytes.NewReader(data)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, reader)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", browserAgents[0])
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	return req, nil
}

// do executes the request and maps failures onto the error taxonomy:
// expired waits become TimeoutError, rejected auth becomes AuthError,
// anything else non-2xx becomes APIError.
func (c *Client) do(op string, req *http.Request, out interface{}) error {
	resp, err := c.HTTP.Do(req)
	if err != nil {
		var uerr *url.Error
		if errors.As(err, &uerr) && uerr.Timeout() {
			return apperrors.NewTimeoutError(op, err)
		}
		if req.Context().Err() != nil {
			return apperrors.NewTimeoutError(op, err)
		}
		return apperrors.NewAPIError(op, 0, err.Error())
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return apperrors.NewAPIError(op, resp.StatusCode, err.Error())
	}
	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return apperrors.NewAuthError(resp.StatusCode, string(data))
	}
	if resp.StatusCode != http.StatusOK {
		return apperrors.NewAPIError(op, resp.StatusCode, string(data))
	}
	if out != nil {
		if err := json.Unmarshal(data, out); err != nil {
			return apperrors.NewAPIError(op, resp.StatusCode, "malformed payload: "+err.Error())
		}
	}
	return nil
}

// CalendarByDistrict fetches the week's availability for a district. date is
// formatted with DateFormat.
func (c *Client) CalendarByDistrict(ctx context.Context, districtID int, date string) ([]entities.Center, error) {
	q := url.Values{}
	q.Set("district_id", fmt.Sprintf("%d", districtID))
	q.Set("date", date)
	req, err := c.newRequest(ctx, http.MethodGet, calendarByDistrictPath+"?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}
	var out entities.CalendarResponse
	if err := c.do("calendar by district", req, &out); err != nil {
		return nil, err
	}
	return out.Centers, nil
}

// CalendarByPin fetches the week's availability for one postal code.
func (c *Client) CalendarByPin(ctx context.Context, pincode, date string) ([]entities.Center, error) {
	q := url.Values{}
	q.Set("pincode", pincode)
	q.Set("date", date)
	req, err := c.newRequest(ctx, http.MethodGet, calendarByPinPath+"?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}
	var out entities.CalendarResponse
	if err := c.do("calendar by pincode", req, &out); err != nil {
		return nil, err
	}
	return out.Centers, nil
}

// Schedule submits one booking request. Any status other than 200/201 is a
// BookingError carrying the verbatim response body.
func (c *Client) Schedule(ctx context.Context, booking entities.BookingRequest) (entities.BookingResult, error) {
	req, err := c.newRequest(ctx, http.MethodPost, schedulePath, booking)
	if err != nil {
		return entities.BookingResult{}, err
	}
	resp, err := c.HTTP.Do(req)
	if err != nil {
		var uerr *url.Error
		if errors.As(err, &uerr) && uerr.Timeout() {
			return entities.BookingResult{}, apperrors.NewTimeoutError("schedule", err)
		}
		return entities.BookingResult{}, apperrors.NewAPIError("schedule", 0, err.Error())
	}
	defer resp.Body.Close()
	data, _ := io.ReadAll(resp.Body)

	result := entities.BookingResult{Status: resp.StatusCode, Body: string(data)}
	if resp.StatusCode == http.StatusOK || resp.StatusCode == http.StatusCreated {
		result.Booked = true
		return result, nil
	}
	return result, apperrors.NewBookingError(resp.StatusCode, string(data))
}

// Beneficiaries lists the beneficiaries registered to the logged-in account.
func (c *Client) Beneficiaries(ctx context.Context) ([]entities.Beneficiary, error) {
	req, err := c.newRequest(ctx, http.MethodGet, beneficiariesPath, nil)
	if err != nil {
		return nil, err
	}
	var out entities.BeneficiariesResponse
	if err := c.do("beneficiaries", req, &out); err != nil {
		return nil, err
	}
	return out.Beneficiaries, nil
}

// Recaptcha fetches a fresh captcha challenge and returns the raw SVG
// markup embedded in the response.
func (c *Client) Recaptcha(ctx context.Context) (string, error) {
	req, err := c.newRequest(ctx, http.MethodPost, recaptchaPath, nil)
	if err != nil {
		return "", err
	}
	var out entities.CaptchaResponse
	if err := c.do("recaptcha", req, &out); err != nil {
		return "", err
	}
	if out.Captcha == "" {
		return "", apperrors.NewAPIError("recaptcha", http.StatusOK, "empty captcha payload")
	}
	return out.Captcha, nil
}

// GenerateOTP requests an OTP for the mobile number and returns the
// transaction id needed to validate it.
func (c *Client) GenerateOTP(ctx context.Context, mobile string) (string, error) {
	body := entities.GenerateOTPRequest{Mobile: mobile, Secret: otpSecret}
	req, err := c.newRequest(ctx, http.MethodPost, generateOTPPath, body)
	if err != nil {
		return "", err
	}
	var out entities.GenerateOTPResponse
	if err := c.do("generate otp", req, &out); err != nil {
		return "", err
	}
	if out.TxnID == "" {
		return "", apperrors.NewAPIError("generate otp", http.StatusOK, "missing txnId")
	}
	return out.TxnID, nil
}

// ValidateOTP exchanges the SHA-256 digest of the OTP for a bearer token.
func (c *Client) ValidateOTP(ctx context.Context, otpHash, txnID string) (string, error) {
	body := entities.ValidateOTPRequest{OTP: otpHash, TxnID: txnID}
	req, err := c.newRequest(ctx, http.MethodPost, validateOTPPath, body)
	if err != nil {
		return "", err
	}
	var out entities.ValidateOTPResponse
	if err := c.do("validate otp", req, &out); err != nil {
		return "", err
	}
	if out.Token == "" {
		return "", apperrors.NewAPIError("validate otp", http.StatusOK, "missing token")
	}
	return out.Token, nil
}

// States lists the states available for district lookup.
func (c *Client) States(ctx context.Context) ([]entities.State, error) {
	req, err := c.newRequest(ctx, http.MethodGet, statesPath, nil)
	if err != nil {
		return nil, err
	}
	var out entities.StatesResponse
	if err := c.do("states", req, &out); err != nil {
		return nil, err
	}
	return out.States, nil
}

// Districts lists the districts of a state.
func (c *Client) Districts(ctx context.Context, stateID int) ([]entities.District, error) {
	req, err := c.newRequest(ctx, http.MethodGet, fmt.Sprintf(districtsPath, stateID), nil)
	if err != nil {
		return nil, err
	}
	var out entities.DistrictsResponse
	if err := c.do("districts", req, &out); err != nil {
		return nil, err
	}
	return out.Districts, nil
}
