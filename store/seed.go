package store

import (
	"github.com/tabwork/gridbase/record"
)

// DefaultSeed returns the dataset a fresh store starts with when the backend
// holds no snapshot yet.
func DefaultSeed() []record.Record {
	return []record.Record{
		{
			ID: 1, Name: "Liam Carter", Age: 34, Email: "liam.carter@example.com",
			Phone: "555-0101", Address: "12 Harbor Street, Portside",
			RegisteredDate: "2021-03-14", Active: true, Role: record.RoleSuperAdmin,
		},
		{
			ID: 2, Name: "Emma Walsh", Age: 29, Email: "emma.walsh@example.com",
			Phone: "555-0102", Address: "48 Mill Lane, Riverton",
			RegisteredDate: "2021-06-02", Active: true, Role: record.RoleAdmin,
			Children: []record.Child{
				{Column: "department", Value: "Operations"},
			},
		},
		{
			ID: 3, Name: "Noah Pratt", Age: 41, Email: "noah.pratt@example.com",
			Phone: "555-0103", Address: "7 Kiln Court, Ashford",
			RegisteredDate: "2021-09-18", Active: false, Role: record.RoleModerator,
		},
		{
			ID: 4, Name: "Olivia Reyes", Age: 25, Email: "olivia.reyes@example.com",
			Phone: "555-0104", Address: "230 Garden Walk, Portside",
			RegisteredDate: "2022-01-07", Active: true, Role: record.RoleEditor,
		},
		{
			ID: 5, Name: "Mason Hale", Age: 52, Email: "mason.hale@example.com",
			Phone: "555-0105", Address: "91 Quarry Road, Ashford",
			RegisteredDate: "2022-02-21", Active: false, Role: record.RoleAuthor,
			Children: []record.Child{
				{Column: "pen-name", Value: "M. H. Quill"},
				{Column: "genre", Value: "History"},
			},
		},
		{
			ID: 6, Name: "Ava Lindqvist", Age: 31, Email: "ava.lindqvist@example.com",
			Phone: "555-0106", Address: "16 Birch Close, Riverton",
			RegisteredDate: "2022-05-30", Active: true, Role: record.RoleContributor,
		},
		{
			ID: 7, Name: "Ethan Brooks", Age: 23, Email: "ethan.brooks@example.com",
			Phone: "555-0107", Address: "5 Ferry Approach, Portside",
			RegisteredDate: "2022-08-11", Active: true, Role: record.RoleUser,
		},
		{
			ID: 8, Name: "Sophia Nkemelu", Age: 38, Email: "sophia.nkemelu@example.com",
			Phone: "555-0108", Address: "77 Beacon Rise, Hillcrest",
			RegisteredDate: "2022-11-25", Active: false, Role: record.RoleUser,
		},
		{
			ID: 9, Name: "Lucas Moreau", Age: 46, Email: "lucas.moreau@example.com",
			Phone: "555-0109", Address: "3 Vine Terrace, Riverton",
			RegisteredDate: "2023-02-09", Active: true, Role: record.RoleModerator,
		},
		{
			ID: 10, Name: "Mia Castellano", Age: 27, Email: "mia.castellano@example.com",
			Phone: "555-0110", Address: "140 Station Parade, Hillcrest",
			RegisteredDate: "2023-04-17", Active: true, Role: record.RoleEditor,
			Children: []record.Child{
				{Column: "shift", Value: "Evening"},
			},
		},
		{
			ID: 11, Name: "Oliver Danjuma", Age: 60, Email: "oliver.danjuma@example.com",
			Phone: "555-0111", Address: "22 Copper Row, Ashford",
			RegisteredDate: "2023-07-03", Active: false, Role: record.RoleUser,
		},
		{
			ID: 12, Name: "Isabella Varga", Age: 19, Email: "isabella.varga@example.com",
			Phone: "555-0112", Address: "8 Larch End, Portside",
			RegisteredDate: "2023-10-28", Active: true, Role: record.RoleUser,
		},
	}
}
