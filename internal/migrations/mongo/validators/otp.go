package validators

import "go.mongodb.org/mongo-driver/bson"

var OtpCodeValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"code",
			"expires_at",
			"created_at",
		},
		"additionalProperties": true,

		"properties": bson.M{
			"_id": bson.M{
				"bsonType": "string",
				"pattern":  `^\d{10}$`,
			},

			"code": bson.M{
				"bsonType":  "string",
				"minLength": 6,
				"maxLength": 6,
			},

			"expires_at": bson.M{
				"bsonType": "date",
			},

			"created_at": bson.M{
				"bsonType": "date",
			},
		},
	},
}
