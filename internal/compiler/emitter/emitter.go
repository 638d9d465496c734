// Package emitter renders a definition table as a single-header C binding:
// constants, structs, enums, a method-id enum, per-function argument structs,
// and a msgpack read/write skeleton against the cmp C library.
package emitter

import (
	"fmt"
	"strings"

	"github.com/vixos/vixrpc/internal/compiler/defs"
)

const indent = "    "

type Emitter struct {
	builder strings.Builder
}

func NewEmitter() *Emitter {
	return &Emitter{}
}

// cTypeName maps an IDL type annotation to its C spelling. List and tuple
// annotations have no scalar C mapping and fall back to an opaque pointer.
func cTypeName(typename string) (string, bool) {
	switch typename {
	case "u8":
		return "uint8_t", true
	case "i8":
		return "int8_t", true
	case "u16":
		return "uint16_t", true
	case "i16":
		return "int16_t", true
	case "u32":
		return "uint32_t", true
	case "i32":
		return "int32_t", true
	case "u64":
		return "uint64_t", true
	case "i64":
		return "int64_t", true
	case "f32":
		return "float", true
	case "f64":
		return "double", true
	case "bin", "str":
		return "char*", true
	case "bool":
		return "bool", true
	}
	return "void*", false
}

// cmpWriteCall maps an IDL type to the cmp write routine used in the
// serialization skeleton.
func cmpWriteCall(typename string) string {
	switch typename {
	case "i8", "i16", "i32", "i64":
		return "cmp_write_integer"
	case "u8", "u16", "u32", "u64":
		return "cmp_write_uinteger"
	case "f32", "f64":
		return "cmp_write_decimal"
	case "bool":
		return "cmp_write_bool"
	case "str":
		return "cmp_write_str"
	case "bin":
		return "cmp_write_bin"
	}
	return "cmp_write_object"
}

func (e *Emitter) line(s string) {
	e.builder.WriteString(s)
	e.builder.WriteByte('\n')
}

func (e *Emitter) linef(format string, args ...any) {
	fmt.Fprintf(&e.builder, format, args...)
	e.builder.WriteByte('\n')
}

// Emit renders the header for the given interface name. Definitions appear
// in declaration order. Unions and signals contribute no C output.
func (e *Emitter) Emit(name string, table *defs.Table) string {
	upper := strings.ToUpper(name)

	e.linef("#ifndef __%s_H__", upper)
	e.linef("#define __%s_H__", upper)
	e.line("#include <stdint.h>")
	e.line("")
	e.line("#ifdef __cplusplus")
	e.line(`extern "C" {`)
	e.line("#endif")
	e.line("")

	// Functions keep their table order for stable method ids.
	var fnNames []string
	fns := make(map[string]*defs.Function)

	for _, origKey := range table.Names() {
		def, _ := table.Lookup(origKey)
		key := name + "_" + origKey

		switch d := def.(type) {
		case *defs.Const:
			if d.Value.IsInt {
				e.linef("#define %s %d", key, d.Value.Int)
			} else {
				e.linef("#define %s %q", key, d.Value.Text)
			}
		case *defs.Struct:
			e.linef("struct %s {", key)
			for _, field := range d.Fields {
				ctype, ok := cTypeName(field.Type)
				if ok {
					e.linef("%s%s %s;", indent, ctype, field.Name)
				} else {
					e.linef("%s%s %s; /* %s */", indent, ctype, field.Name, field.Type)
				}
			}
			e.line("};")
			e.line("")
		case *defs.Enum:
			e.linef("enum %s {", key)
			for _, member := range d.Members {
				e.linef("%s%s_%s = %s,", indent, key, member.Name, member.Value)
			}
			e.line("};")
			e.line("")
		case *defs.Function:
			fnNames = append(fnNames, origKey)
			fns[origKey] = d
		case *defs.Signal, *defs.Union:
			// No C surface: signals are one-way dispatch entries the
			// generator's consumer handles, unions have no scalar layout.
		}
	}

	e.line("typedef enum {")
	for _, fnName := range fnNames {
		e.linef("%s%s_METHOD_%s,", indent, upper, strings.ToUpper(fnName))
	}
	e.linef("} %s_methodid_t;", name)
	e.line("")

	for _, fnName := range fnNames {
		e.line("typedef struct {")
		for _, param := range fns[fnName].Params {
			ctype, _ := cTypeName(param.Type)
			e.linef("%s%s %s;", indent, ctype, param.Name)
		}
		e.linef("} %s_%s_args_t;", name, fnName)
		e.line("")
	}

	e.line("typedef struct {")
	e.linef("%suint64_t messageid;", indent)
	e.linef("%s%s_methodid_t methodid;", indent, name)
	e.linef("%sunion {", indent)
	for _, fnName := range fnNames {
		e.linef("%s%s%s_%s_args_t args_%s;", indent, indent, name, fnName, fnName)
	}
	e.linef("%s};", indent)
	e.linef("} %s_method_t;", name)
	e.line("")

	e.emitMessageIO(name, upper, fnNames, fns)

	e.line("#ifdef __cplusplus")
	e.line(`} /* extern "C" */`)
	e.line("#endif")
	e.line("")
	e.linef("#endif /* __%s_H__ */", upper)

	return e.builder.String()
}

// emitMessageIO writes the prototypes and the NAME_IMPLEMENTATION-guarded
// cmp read/write skeleton.
func (e *Emitter) emitMessageIO(name, upper string, fnNames []string, fns map[string]*defs.Function) {
	e.linef("int %s_read_message(int, %s_method_t*);", name, name)
	e.linef("int %s_write_message(%s_method_t*, int);", name, name)
	e.line("")
	e.linef("#ifdef %s_IMPLEMENTATION", upper)
	e.line("#include <cmp/cmp.h>")
	e.linef("int %s_read_message(int fd, %s_method_t* args) {", name, name)
	e.linef("%scmp_ctx_t cmp;", indent)
	e.linef("%scmp_init(&cmp, &fd, file_reader, file_writer);", indent)
	e.line("}")
	e.line("")
	e.linef("int %s_write_message(%s_method_t* args, int fd) {", name, name)
	e.linef("%scmp_ctx_t cmp;", indent)
	e.linef("%scmp_init(&cmp, &fd, file_reader, file_writer);", indent)
	e.linef("%sif (!cmp_write_array(&cmp, 2)) { return 1; }", indent)
	e.linef("%sif (!cmp_write_uinteger(&cmp, args->messageid)) { return 1; }", indent)
	e.linef("%sif (!cmp_write_uinteger(&cmp, args->methodid)) { return 1; }", indent)
	e.linef("%sswitch (args->methodid) {", indent)
	for _, fnName := range fnNames {
		e.linef("%s%scase %s_METHOD_%s:", indent, indent, upper, strings.ToUpper(fnName))
		for _, param := range fns[fnName].Params {
			e.linef("%s%s%sif (!%s(&cmp, args->args_%s.%s)) { return 1; }",
				indent, indent, indent, cmpWriteCall(param.Type), fnName, param.Name)
		}
		e.linef("%s%s%sbreak;", indent, indent, indent)
	}
	e.linef("%s}", indent)
	e.linef("%sreturn 0;", indent)
	e.line("}")
	e.linef("#endif /* %s_IMPLEMENTATION */", upper)
	e.line("")
}
