package infer_test

import (
	"context"
	"fmt"

	"github.com/koustreak/schemats/internal/infer"
	"github.com/koustreak/schemats/internal/render"
	"github.com/koustreak/schemats/internal/schema"
)

// staticProvider serves a fixed single-table catalog.
type staticProvider struct{}

func (staticProvider) DefaultSchema() string { return "shop" }

func (staticProvider) ListTables(context.Context, string) ([]string, error) {
	return []string{"users"}, nil
}

func (staticProvider) ListColumns(context.Context, string, string) ([]schema.ColumnDescriptor, error) {
	active := "active"
	return []schema.ColumnDescriptor{
		{Name: "id", NativeType: "int", OrdinalPosition: 1, IsAutoGenerated: true},
		{Name: "email", NativeType: "varchar", OrdinalPosition: 2},
		{Name: "status", NativeType: "enum", OrdinalPosition: 3, DefaultValue: &active},
	}, nil
}

func (staticProvider) ListEnumColumns(context.Context, string, string) ([]schema.EnumColumn, error) {
	return []schema.EnumColumn{
		{ColumnName: "status", NativeType: "enum", Definition: "enum('active','banned')"},
	}, nil
}

func ExampleTable() {
	res, err := infer.Table(context.Background(), staticProvider{}, "users", infer.Options{
		Render: render.Options{Prefix: "DB"},
	})
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Print(res.Code)
	// Output:
	// export interface DBUsers {
	//   id: number
	//   email: string
	//   /** Defaults to: active. */
	//   status: 'active' | 'banned'
	// }
	//
	// export interface DBUsersWithDefaults {
	//   id?: number
	//   email: string
	//   /** Defaults to: active. */
	//   status?: 'active' | 'banned'
	// }
}

func ExampleSchemaModel() {
	set, err := infer.SchemaModel(context.Background(), staticProvider{}, infer.Options{})
	if err != nil {
		fmt.Println(err)
		return
	}
	for _, t := range set.Tables {
		for _, c := range t.Columns {
			fmt.Printf("%s.%s %s default=%v\n", t.Name, c.Name, c.Type, c.HasDefault)
		}
	}
	// Output:
	// users.id int default=true
	// users.email string default=false
	// users.status enum(enum_status) default=true
}
