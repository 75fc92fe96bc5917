package repositories

import (
	"database/sql"
	"fmt"
	"time"

	"vitadoc/internal/models"
)

type UserRepository interface {
	Create(user *models.User) error
	GetByID(id int) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	GetByPhone(phone string) (*models.User, error)
	GetByGoogleID(googleID string) (*models.User, error)

	UpdatePassword(userID int, passwordHash string) error

	// reset state: the three fields move together
	UpdateResetState(userID int, otpHash string, expiry time.Time, resetType string) error
	ClearResetState(userID int) error
}

type userRepository struct {
	DB *sql.DB
}

func NewUserRepository(db *sql.DB) UserRepository {
	return &userRepository{DB: db}
}

const userColumns = `
	id, first_name, last_name, email, gender, date_of_birth,
	medical_specialty, picture, location, phone_number, second_phone_number,
	password_hash, google_id,
	reset_otp, reset_otp_expiry, reset_type,
	created_at
`

func (r *userRepository) Create(user *models.User) error {
	const q = `
		INSERT INTO users (
			first_name, last_name, email, gender, date_of_birth,
			medical_specialty, picture, location, phone_number, second_phone_number,
			password_hash, google_id
		)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)
		RETURNING id, created_at
	`
	if err := r.DB.QueryRow(q,
		user.FirstName,
		user.LastName,
		user.Email,
		nullStr(user.Gender),
		user.DateOfBirth,
		nullStr(user.MedicalSpecialty),
		nullStr(user.Picture),
		nullStr(user.Location),
		nullStr(user.PhoneNumber),
		nullStr(user.SecondPhone),
		nullStr(user.PasswordHash),
		user.GoogleID,
	).Scan(&user.ID, &user.CreatedAt); err != nil {
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

func (r *userRepository) GetByID(id int) (*models.User, error) {
	q := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return r.scanOne(r.DB.QueryRow(q, id))
}

func (r *userRepository) GetByEmail(email string) (*models.User, error) {
	q := `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	return r.scanOne(r.DB.QueryRow(q, email))
}

func (r *userRepository) GetByPhone(phone string) (*models.User, error) {
	// phone numbers are normalized before storage, so equality is enough
	q := `SELECT ` + userColumns + ` FROM users WHERE phone_number = $1 OR second_phone_number = $1`
	return r.scanOne(r.DB.QueryRow(q, phone))
}

func (r *userRepository) GetByGoogleID(googleID string) (*models.User, error) {
	q := `SELECT ` + userColumns + ` FROM users WHERE google_id = $1`
	return r.scanOne(r.DB.QueryRow(q, googleID))
}

func (r *userRepository) UpdatePassword(userID int, passwordHash string) error {
	const q = `UPDATE users SET password_hash = $2 WHERE id = $1`
	_, err := r.DB.Exec(q, userID, passwordHash)
	return err
}

func (r *userRepository) UpdateResetState(userID int, otpHash string, expiry time.Time, resetType string) error {
	const q = `
		UPDATE users
		SET reset_otp = $2, reset_otp_expiry = $3, reset_type = $4
		WHERE id = $1
	`
	_, err := r.DB.Exec(q, userID, otpHash, expiry, resetType)
	return err
}

func (r *userRepository) ClearResetState(userID int) error {
	const q = `
		UPDATE users
		SET reset_otp = NULL, reset_otp_expiry = NULL, reset_type = NULL
		WHERE id = $1
	`
	_, err := r.DB.Exec(q, userID)
	return err
}

func (r *userRepository) scanOne(row *sql.Row) (*models.User, error) {
	u := &models.User{}
	var (
		gender, specialty, picture, location sql.NullString
		phone, secondPhone, passwordHash     sql.NullString
		googleID, resetOTP, resetType        sql.NullString
		dob, resetExpiry                     sql.NullTime
	)
	if err := row.Scan(
		&u.ID, &u.FirstName, &u.LastName, &u.Email, &gender, &dob,
		&specialty, &picture, &location, &phone, &secondPhone,
		&passwordHash, &googleID,
		&resetOTP, &resetExpiry, &resetType,
		&u.CreatedAt,
	); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("scan user: %w", err)
	}

	u.Gender = gender.String
	u.MedicalSpecialty = specialty.String
	u.Picture = picture.String
	u.Location = location.String
	u.PhoneNumber = phone.String
	u.SecondPhone = secondPhone.String
	u.PasswordHash = passwordHash.String
	if dob.Valid {
		u.DateOfBirth = &dob.Time
	}
	if googleID.Valid {
		u.GoogleID = &googleID.String
	}
	if resetOTP.Valid {
		u.ResetOTP = &resetOTP.String
	}
	if resetExpiry.Valid {
		u.ResetOTPExpiry = &resetExpiry.Time
	}
	if resetType.Valid {
		u.ResetType = &resetType.String
	}
	return u, nil
}

func nullStr(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
