// Package graphql defines the read-only GraphQL schema over the CMS
// metadata: user profiles and portfolio records. Writes go through the
// REST surface only.
package graphql

import (
	"errors"

	"github.com/graphql-go/graphql"

	"github.com/mycms/portfolio-backend/internal/common"
	"github.com/mycms/portfolio-backend/internal/repository"
)

// UserType exposes the public profile attributes. The password field
// is deliberately absent from the schema.
var UserType = graphql.NewObject(graphql.ObjectConfig{
	Name: "User",
	Fields: graphql.Fields{
		"username":   &graphql.Field{Type: graphql.String},
		"realname":   &graphql.Field{Type: graphql.String},
		"birthdate":  &graphql.Field{Type: graphql.String},
		"bio":        &graphql.Field{Type: graphql.String},
		"profilePic": &graphql.Field{Type: graphql.String},
		"created_at": &graphql.Field{Type: graphql.DateTime},
	},
})

// PortfolioType exposes one portfolio metadata record.
var PortfolioType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Portfolio",
	Fields: graphql.Fields{
		"filename":  &graphql.Field{Type: graphql.String},
		"title":     &graphql.Field{Type: graphql.String},
		"bio":       &graphql.Field{Type: graphql.String},
		"url":       &graphql.Field{Type: graphql.String},
		"createdAt": &graphql.Field{Type: graphql.DateTime},
	},
})

// NewSchema builds the root query schema over the repositories.
func NewSchema(users repository.Users, portfolios repository.Portfolios) (graphql.Schema, error) {
	rootQuery := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"user": &graphql.Field{
				Type: UserType,
				Args: graphql.FieldConfigArgument{
					"username": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					username := p.Args["username"].(string)
					user, err := users.Find(p.Context, username)
					if errors.Is(err, common.ErrNotFound) {
						return nil, nil
					}
					if err != nil {
						return nil, err
					}
					return *user, nil
				},
			},
			"portfolios": &graphql.Field{
				Type: graphql.NewList(PortfolioType),
				Args: graphql.FieldConfigArgument{
					"user": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					owner := p.Args["user"].(string)
					return portfolios.ListByOwner(p.Context, owner)
				},
			},
		},
	})

	return graphql.NewSchema(graphql.SchemaConfig{Query: rootQuery})
}
