package entities

// Two-step OTP exchange payloads.

type GenerateOTPRequest struct {
	Mobile string `json:"mobile"`
	Secret string `json:"secret"`
}

type GenerateOTPResponse struct {
	TxnID string `json:"txnId"`
}

type ValidateOTPRequest struct {
	OTP   string `json:"otp"`
	TxnID string `json:"txnId"`
}

type ValidateOTPResponse struct {
	Token string `json:"token"`
}

type CaptchaResponse struct {
	Captcha string `json:"captcha"`
}
