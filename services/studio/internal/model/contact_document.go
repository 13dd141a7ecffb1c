package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ContactDocument struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Name      string             `bson:"name"`
	Email     string             `bson:"email"`
	Phone     string             `bson:"phone,omitempty"`
	Service   string             `bson:"service,omitempty"`
	Message   string             `bson:"message"`
	Handled   bool               `bson:"handled"`
	CreatedAt time.Time          `bson:"created_at"`
}
