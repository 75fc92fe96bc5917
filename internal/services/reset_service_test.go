package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"vitadoc/internal/models"
)

type resetFixture struct {
	repo     *fakeUserRepo
	otp      *otpService
	emails   *fakeEmail
	auth     AuthService
	identity *fakeIdentity
	svc      *resetService
}

func newResetFixture(t *testing.T) *resetFixture {
	t.Helper()
	repo := newFakeUserRepo()
	auth := NewAuthService()
	otp := NewOTPService(repo).(*otpService)
	emails := newFakeEmail()
	identity := &fakeIdentity{claims: map[string]*IdentityClaims{}}
	svc := NewResetService(repo, otp, emails, auth, identity).(*resetService)
	return &resetFixture{repo: repo, otp: otp, emails: emails, auth: auth, identity: identity, svc: svc}
}

func (f *resetFixture) seedLocalUser(t *testing.T, email, password, phone string) *models.User {
	t.Helper()
	hash, err := f.auth.HashPassword(password)
	if err != nil {
		t.Fatalf("hash seed password: %v", err)
	}
	u := &models.User{Email: email, PasswordHash: hash, PhoneNumber: phone}
	if err := f.repo.Create(u); err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return u
}

func TestEmailResetFullFlow(t *testing.T) {
	f := newResetFixture(t)
	f.seedLocalUser(t, "doe@example.com", "OldPass123", "")

	if err := f.svc.RequestReset("Doe@Example.com", models.ResetTypeEmail); err != nil {
		t.Fatalf("RequestReset: %v", err)
	}
	code, ok := f.emails.resetCodes["doe@example.com"]
	if !ok {
		t.Fatal("no reset code was mailed")
	}

	if err := f.svc.VerifyCode("doe@example.com", code, models.ResetTypeEmail); err != nil {
		t.Fatalf("VerifyCode: %v", err)
	}

	err := f.svc.ResetPassword(context.Background(), models.ResetPasswordRequest{
		Type:        models.ResetTypeEmail,
		Contact:     "doe@example.com",
		NewPassword: "NewPass123",
	})
	if err != nil {
		t.Fatalf("ResetPassword: %v", err)
	}

	fresh, _ := f.repo.GetByEmail("doe@example.com")
	if !f.auth.CheckPassword("NewPass123", fresh.PasswordHash) {
		t.Fatal("new password must verify after reset")
	}
	if f.auth.CheckPassword("OldPass123", fresh.PasswordHash) {
		t.Fatal("old password must no longer verify")
	}
	if fresh.HasPendingReset() {
		t.Fatal("reset state must be cleared after a successful reset")
	}
}

func TestRequestResetUnknownEmail(t *testing.T) {
	f := newResetFixture(t)
	if err := f.svc.RequestReset("nobody@example.com", models.ResetTypeEmail); !errors.Is(err, ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}

func TestRequestResetFederatedOnly(t *testing.T) {
	f := newResetFixture(t)
	sub := "google-sub-1"
	u := &models.User{Email: "gdoc@example.com", GoogleID: &sub}
	if err := f.repo.Create(u); err != nil {
		t.Fatalf("seed user: %v", err)
	}

	err := f.svc.RequestReset("gdoc@example.com", models.ResetTypeEmail)
	if !errors.Is(err, ErrFederatedOnly) {
		t.Fatalf("want ErrFederatedOnly, got %v", err)
	}
	fresh, _ := f.repo.GetByEmail("gdoc@example.com")
	if fresh.HasPendingReset() {
		t.Fatal("no OTP may be created for a google-only account")
	}
}

func TestRequestResetPhoneIsStateless(t *testing.T) {
	f := newResetFixture(t)
	u := f.seedLocalUser(t, "doe@example.com", "OldPass123", "+15550001111")

	if err := f.svc.RequestReset("+15550001111", models.ResetTypePhone); err != nil {
		t.Fatalf("phone RequestReset must acknowledge, got %v", err)
	}
	fresh, _ := f.repo.GetByID(u.ID)
	if fresh.HasPendingReset() {
		t.Fatal("phone request must not create server-side state")
	}
	if len(f.emails.resetCodes) != 0 {
		t.Fatal("phone request must not send email")
	}
}

func TestRequestResetEmailTransportFailure(t *testing.T) {
	f := newResetFixture(t)
	f.seedLocalUser(t, "doe@example.com", "OldPass123", "")
	f.emails.fail = true

	err := f.svc.RequestReset("doe@example.com", models.ResetTypeEmail)
	if !errors.Is(err, ErrEmailSend) {
		t.Fatalf("want ErrEmailSend, got %v", err)
	}
}

func TestVerifyCodeWrongOrExpired(t *testing.T) {
	f := newResetFixture(t)
	f.seedLocalUser(t, "doe@example.com", "OldPass123", "")

	if err := f.svc.RequestReset("doe@example.com", models.ResetTypeEmail); err != nil {
		t.Fatalf("RequestReset: %v", err)
	}
	code := f.emails.resetCodes["doe@example.com"]

	if err := f.svc.VerifyCode("doe@example.com", "000000", models.ResetTypeEmail); !errors.Is(err, ErrCodeInvalid) {
		t.Fatalf("wrong code: want ErrCodeInvalid, got %v", err)
	}

	// 11 minutes later the correct code is also rejected
	f.otp.now = func() time.Time { return time.Now().Add(11 * time.Minute) }
	if err := f.svc.VerifyCode("doe@example.com", code, models.ResetTypeEmail); !errors.Is(err, ErrCodeInvalid) {
		t.Fatalf("expired code: want ErrCodeInvalid, got %v", err)
	}
}

func TestResetPasswordExpiredBetweenVerifyAndReset(t *testing.T) {
	f := newResetFixture(t)
	f.seedLocalUser(t, "doe@example.com", "OldPass123", "")

	if err := f.svc.RequestReset("doe@example.com", models.ResetTypeEmail); err != nil {
		t.Fatalf("RequestReset: %v", err)
	}
	code := f.emails.resetCodes["doe@example.com"]
	if err := f.svc.VerifyCode("doe@example.com", code, models.ResetTypeEmail); err != nil {
		t.Fatalf("VerifyCode: %v", err)
	}

	// user verified, then waited past the expiry before submitting
	f.svc.now = func() time.Time { return time.Now().Add(11 * time.Minute) }
	err := f.svc.ResetPassword(context.Background(), models.ResetPasswordRequest{
		Type:        models.ResetTypeEmail,
		Contact:     "doe@example.com",
		NewPassword: "NewPass123",
	})
	if !errors.Is(err, ErrSessionExpired) {
		t.Fatalf("want ErrSessionExpired, got %v", err)
	}
}

func TestResetPasswordWithoutPendingCode(t *testing.T) {
	f := newResetFixture(t)
	f.seedLocalUser(t, "doe@example.com", "OldPass123", "")

	err := f.svc.ResetPassword(context.Background(), models.ResetPasswordRequest{
		Type:        models.ResetTypeEmail,
		Contact:     "doe@example.com",
		NewPassword: "NewPass123",
	})
	if !errors.Is(err, ErrSessionExpired) {
		t.Fatalf("want ErrSessionExpired, got %v", err)
	}
}

func TestPhoneResetFlow(t *testing.T) {
	f := newResetFixture(t)
	f.seedLocalUser(t, "doe@example.com", "OldPass123", "+15550001111")
	f.identity.claims["firebase-token"] = &IdentityClaims{
		Sub:         "fb-1",
		PhoneNumber: "+1 555 000-1111", // raw claim form; server normalizes
	}

	err := f.svc.ResetPassword(context.Background(), models.ResetPasswordRequest{
		Type:        models.ResetTypePhone,
		IDToken:     "firebase-token",
		NewPassword: "NewPass123",
	})
	if err != nil {
		t.Fatalf("phone ResetPassword: %v", err)
	}
	fresh, _ := f.repo.GetByEmail("doe@example.com")
	if !f.auth.CheckPassword("NewPass123", fresh.PasswordHash) {
		t.Fatal("new password must verify after phone reset")
	}
}

func TestPhoneResetBadToken(t *testing.T) {
	f := newResetFixture(t)
	err := f.svc.ResetPassword(context.Background(), models.ResetPasswordRequest{
		Type:        models.ResetTypePhone,
		IDToken:     "forged",
		NewPassword: "NewPass123",
	})
	if !errors.Is(err, ErrUpstreamAuth) {
		t.Fatalf("want ErrUpstreamAuth, got %v", err)
	}
}

func TestPhoneResetUnknownNumber(t *testing.T) {
	f := newResetFixture(t)
	f.identity.claims["firebase-token"] = &IdentityClaims{Sub: "fb-1", PhoneNumber: "+15559998888"}

	err := f.svc.ResetPassword(context.Background(), models.ResetPasswordRequest{
		Type:        models.ResetTypePhone,
		IDToken:     "firebase-token",
		NewPassword: "NewPass123",
	})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}

func TestSecondRequestReplacesFirstCode(t *testing.T) {
	f := newResetFixture(t)
	f.seedLocalUser(t, "doe@example.com", "OldPass123", "")

	if err := f.svc.RequestReset("doe@example.com", models.ResetTypeEmail); err != nil {
		t.Fatalf("first RequestReset: %v", err)
	}
	first := f.emails.resetCodes["doe@example.com"]

	if err := f.svc.RequestReset("doe@example.com", models.ResetTypeEmail); err != nil {
		t.Fatalf("second RequestReset: %v", err)
	}
	second := f.emails.resetCodes["doe@example.com"]

	if first != second {
		if err := f.svc.VerifyCode("doe@example.com", first, models.ResetTypeEmail); !errors.Is(err, ErrCodeInvalid) {
			t.Fatalf("first code must be dead after reissue, got %v", err)
		}
	}
	if err := f.svc.VerifyCode("doe@example.com", second, models.ResetTypeEmail); err != nil {
		t.Fatalf("second code must verify, got %v", err)
	}
}
