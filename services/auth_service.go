package services

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"setsweet/models"
	"setsweet/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/crypto/bcrypt"
)

type AuthService struct {
	userCollection *mongo.Collection
	jwtSecret      string
	jwtIssuer      string
	jwtExpiration  time.Duration
}

type LoginResult struct {
	User  UserInfo `json:"user"`
	Token string   `json:"token"`
}

type UserInfo struct {
	ID    primitive.ObjectID `json:"id"`
	Email string             `json:"email"`
}

func NewAuthService(db *mongo.Database, jwtSecret, jwtIssuer string, jwtExpiration time.Duration) *AuthService {
	service := &AuthService{
		userCollection: db.Collection("users"),
		jwtSecret:      jwtSecret,
		jwtIssuer:      jwtIssuer,
		jwtExpiration:  jwtExpiration,
	}

	service.createIndexes()
	return service
}

// userIndexModels declares the indexes backing the users collection. Email
// uniqueness is enforced here; the register pre-check only gives a nicer
// error for the common case.
func userIndexModels() []mongo.IndexModel {
	return []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}
}

func (s *AuthService) createIndexes() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Log but don't fail; the indexes may already exist.
	if _, err := s.userCollection.Indexes().CreateMany(ctx, userIndexModels()); err != nil {
		log.Printf("Warning: Failed to create user indexes: %v", err)
	}
}

// Register creates a new user with a bcrypt-hashed password. Re-registering
// an existing email fails and leaves the existing record untouched.
func (s *AuthService) Register(ctx context.Context, email, password string) (*models.User, error) {
	email = strings.TrimSpace(strings.ToLower(email))

	if err := utils.ValidateEmail(email); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}
	if password == "" {
		return nil, fmt.Errorf("%w: password cannot be empty", ErrInvalidPayload)
	}

	count, err := s.userCollection.CountDocuments(ctx, bson.M{"email": email})
	if err != nil {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}
	if count > 0 {
		return nil, ErrDuplicateUser
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now()
	user := models.User{
		ID:        primitive.NewObjectID(),
		Email:     email,
		Password:  string(hashed),
		Projects:  []primitive.ObjectID{},
		CreatedAt: now,
		UpdatedAt: now,
	}

	if _, err := s.userCollection.InsertOne(ctx, user); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrDuplicateUser
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return &user, nil
}

// Login verifies the password hash and issues a signed, time-limited token
// embedding the user id. There is no revocation list; logout is client-side.
func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	email = strings.TrimSpace(strings.ToLower(email))

	var user models.User
	err := s.userCollection.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return nil, ErrUserNotFound
	} else if err != nil {
		return nil, fmt.Errorf("failed to fetch user: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		return nil, ErrInvalidPassword
	}

	token, err := utils.GenerateToken(user.ID, user.Email, s.jwtSecret, s.jwtIssuer, s.jwtExpiration)
	if err != nil {
		return nil, fmt.Errorf("failed to sign token: %w", err)
	}

	return &LoginResult{
		User:  UserInfo{ID: user.ID, Email: user.Email},
		Token: token,
	}, nil
}

// GetUser resolves a user by id.
func (s *AuthService) GetUser(ctx context.Context, userID primitive.ObjectID) (*models.User, error) {
	var user models.User
	err := s.userCollection.FindOne(ctx, bson.M{"_id": userID}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return nil, ErrUserNotFound
	} else if err != nil {
		return nil, fmt.Errorf("failed to fetch user: %w", err)
	}
	return &user, nil
}
