// metaform-cli drives the metadata pipeline from the command line: it loads
// a schema document, seeds state from an optional values file, and prints
// descriptors, validation results, the wire payload, or rendered HTML.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"sort"
	"strings"

	metaform "github.com/goliatone/go-metaform"
	"github.com/goliatone/go-metaform/pkg/formstate"
	"github.com/goliatone/go-metaform/pkg/model"
	"github.com/goliatone/go-metaform/pkg/render"
)

func main() {
	schemaPath := flag.String("schema", "", "metadata document path (JSON or YAML)")
	component := flag.String("openapi-component", "", "treat the schema as an OpenAPI document and derive fields from this component")
	valuesPath := flag.String("values", "", "JSON values file used to seed form state")
	command := flag.String("command", "describe", "one of: describe, validate, payload, render")
	output := flag.String("output", "", "output file (stdout if empty)")
	flag.Parse()

	if *schemaPath == "" {
		log.Fatal("missing required -schema flag")
	}

	ctx := context.Background()
	form, err := buildForm(ctx, *schemaPath, *component)
	if err != nil {
		log.Fatalf("failed to build form: %v", err)
	}

	tree := metaform.Initialize(form)
	if *valuesPath != "" {
		tree, err = seedValues(tree, form, *valuesPath)
		if err != nil {
			log.Fatalf("failed to apply values: %v", err)
		}
	}

	out, err := run(ctx, *command, form, tree)
	if err != nil {
		log.Fatalf("%s failed: %v", *command, err)
	}

	if *output != "" {
		if err := os.WriteFile(*output, out, 0o644); err != nil {
			log.Fatalf("failed to write output: %v", err)
		}
		fmt.Printf("written to %s\n", *output)
		return
	}
	fmt.Println(strings.TrimRight(string(out), "\n"))
}

func buildForm(ctx context.Context, path, component string) (metaform.Form, error) {
	if component != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return metaform.Form{}, err
		}
		return metaform.BuildFormFromOpenAPI(ctx, raw, component)
	}
	doc, err := metaform.LoadFile(path)
	if err != nil {
		return metaform.Form{}, err
	}
	return metaform.BuildForm(doc)
}

func run(ctx context.Context, command string, form metaform.Form, tree *metaform.Tree) ([]byte, error) {
	switch command {
	case "describe":
		return describe(form)
	case "validate":
		result := metaform.Validate(form, tree)
		if result.OK {
			return []byte("ok\n"), nil
		}
		return validationReport(result)
	case "payload":
		payload, result := metaform.Submit(form, tree)
		if !result.OK {
			report, err := validationReport(result)
			if err != nil {
				return nil, err
			}
			return nil, fmt.Errorf("state does not validate:\n%s", report)
		}
		return json.MarshalIndent(payload, "", "  ")
	case "render":
		doc, err := metaform.RenderForm(ctx, form, render.RenderOptions{
			Action: "/submit",
			Tree:   tree,
		})
		if err != nil {
			return nil, err
		}
		return doc, nil
	default:
		return nil, fmt.Errorf("unknown command %q", command)
	}
}

func describe(form metaform.Form) ([]byte, error) {
	var b strings.Builder
	var walk func(fields []model.Field, indent string)
	walk = func(fields []model.Field, indent string) {
		for _, field := range fields {
			required := ""
			if field.Required {
				required = " required"
			}
			fmt.Fprintf(&b, "%s%s  %s/%s%s  %q\n",
				indent, field.Key, field.Type, field.Cardinality, required, field.Label)
			walk(field.Children, indent+"  ")
		}
	}
	walk(form.Fields, "")
	return []byte(b.String()), nil
}

func validationReport(result metaform.Result) ([]byte, error) {
	keys := make([]string, 0, len(result.Errors))
	for key := range result.Errors {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, key := range keys {
		flat := render.FlattenErrors(map[string]metaform.ErrorNode{key: result.Errors[key]})
		paths := make([]string, 0, len(flat))
		for path := range flat {
			paths = append(paths, path)
		}
		sort.Strings(paths)
		for _, path := range paths {
			for _, message := range flat[path] {
				fmt.Fprintf(&b, "%s: %s\n", path, message)
			}
		}
	}
	return []byte(b.String()), nil
}

// seedValues applies a flat JSON values file to the tree. Scalars are
// strings, multi fields are string arrays, and group fields are arrays of
// child-keyed objects, one per instance.
func seedValues(tree *metaform.Tree, form metaform.Form, path string) (*metaform.Tree, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var values map[string]any
	if err := json.Unmarshal(raw, &values); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	for key, value := range values {
		field, ok := form.Field(key)
		if !ok {
			return nil, fmt.Errorf("unknown field %q", key)
		}
		tree, err = applyValue(tree, field, value)
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", key, err)
		}
	}
	return tree, nil
}

func applyValue(tree *metaform.Tree, field model.Field, value any) (*metaform.Tree, error) {
	var err error
	switch typed := value.(type) {
	case string:
		return tree.SetValue(formstate.FieldPath(field.Key), typed)
	case []any:
		if field.Cardinality.Grouped() {
			return applyInstances(tree, field, typed)
		}
		for i, entry := range typed {
			text, ok := entry.(string)
			if !ok {
				return nil, fmt.Errorf("entry %d is not a string", i)
			}
			if i > 0 {
				if tree, err = tree.AddEntry(formstate.FieldPath(field.Key)); err != nil {
					return nil, err
				}
			}
			if tree, err = tree.SetValue(formstate.FieldPath(field.Key).At(i), text); err != nil {
				return nil, err
			}
		}
		return tree, nil
	case bool:
		text := "no"
		if typed {
			text = "yes"
		}
		return tree.SetValue(formstate.FieldPath(field.Key), text)
	case float64:
		return tree.SetValue(formstate.FieldPath(field.Key), strings.TrimRight(strings.TrimRight(fmt.Sprintf("%f", typed), "0"), "."))
	default:
		return nil, fmt.Errorf("unsupported value shape %T", value)
	}
}

func applyInstances(tree *metaform.Tree, field model.Field, instances []any) (*metaform.Tree, error) {
	var err error
	for i, raw := range instances {
		instance, ok := raw.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("instance %d is not an object", i)
		}
		if i > 0 {
			if tree, err = tree.AddGroupInstance(formstate.FieldPath(field.Key)); err != nil {
				return nil, err
			}
		}
		for childKey, childValue := range instance {
			text, ok := childValue.(string)
			if !ok {
				return nil, fmt.Errorf("instance %d child %q is not a string", i, childKey)
			}
			path := formstate.FieldPath(field.Key).At(i).ChildAt(childKey, 0)
			if tree, err = tree.SetValue(path, text); err != nil {
				return nil, err
			}
		}
	}
	return tree, nil
}
