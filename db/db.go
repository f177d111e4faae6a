package db

import (
	"context"
	"log"
	"os"

	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readconcern"
	"go.mongodb.org/mongo-driver/mongo/writeconcern"
)

var (
	UserCollection           *mongo.Collection
	PendingUserCollection    *mongo.Collection
	ClubsCollection          *mongo.Collection
	TeamsCollection          *mongo.Collection
	PlayersCollection        *mongo.Collection
	FieldsCollection         *mongo.Collection
	BookingsCollection       *mongo.Collection
	SettingsCollection       *mongo.Collection
	RentalRequestsCollection *mongo.Collection
	NotificationsCollection  *mongo.Collection
	Client                   *mongo.Client
)

// Initialize MongoDB connection
func init() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found; using system environment")
	}

	uri := os.Getenv("MONGO_URI")
	if uri == "" {
		uri = "mongodb://localhost:27017"
	}

	clientOptions := options.Client().ApplyURI(uri)
	var err error
	Client, err = mongo.Connect(context.TODO(), clientOptions)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}

	database := Client.Database("pitchdb")
	UserCollection = database.Collection("users")
	PendingUserCollection = database.Collection("pendingusers")
	ClubsCollection = database.Collection("clubs")
	TeamsCollection = database.Collection("teams")
	PlayersCollection = database.Collection("players")
	FieldsCollection = database.Collection("fields")
	BookingsCollection = database.Collection("bookings")
	SettingsCollection = database.Collection("settings")
	RentalRequestsCollection = database.Collection("rentalrequests")
	NotificationsCollection = database.Collection("notifications")
}

// WithTransaction runs fn inside a Mongo session transaction so that
// read-check-write sequences (slot availability + insert) commit atomically.
func WithTransaction(ctx context.Context, fn func(sc mongo.SessionContext) (interface{}, error)) (interface{}, error) {
	session, err := Client.StartSession()
	if err != nil {
		return nil, err
	}
	defer session.EndSession(ctx)

	txnOpts := options.Transaction().
		SetReadConcern(readconcern.Snapshot()).
		SetWriteConcern(writeconcern.Majority())

	return session.WithTransaction(ctx, fn, txnOpts)
}
