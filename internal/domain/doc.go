// Package domain contains the Task entity, its priority codes and the
// validation rules shared by every layer. It has no infrastructure imports.
package domain
