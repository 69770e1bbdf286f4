package validators

import "go.mongodb.org/mongo-driver/bson"

var UserValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"user_id",
			"phone",
			"created_at",
		},
		"additionalProperties": true,

		"properties": bson.M{
			"user_id": bson.M{
				"bsonType":  "string",
				"minLength": 36,
				"maxLength": 36,
			},

			"phone": bson.M{
				"bsonType": "string",
				"pattern":  `^\d{10}$`,
			},

			"name": bson.M{
				"bsonType":  "string",
				"maxLength": 100,
			},

			"email": bson.M{
				"bsonType": "string",
			},

			"dob": bson.M{
				"bsonType": "string",
			},

			"created_at": bson.M{
				"bsonType": "date",
			},

			"updated_at": bson.M{
				"bsonType": "date",
			},
		},
	},
}
