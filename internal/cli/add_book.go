package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/mrlokans/bookshelf/internal/database/books"
	"github.com/mrlokans/bookshelf/internal/services"
)

// AddBookCommand adds a book to the catalogue without going through the API.
type AddBookCommand struct {
	Title        string
	Author       string
	ISBN         string
	DatabasePath string

	Out io.Writer
}

func NewAddBookCommand() *AddBookCommand {
	return &AddBookCommand{Out: os.Stdout}
}

func (cmd *AddBookCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("add-book", flag.ContinueOnError)

	fs.StringVar(&cmd.Title, "title", "", "Book title (required)")
	fs.StringVar(&cmd.Author, "author", "", "Book author")
	fs.StringVar(&cmd.ISBN, "isbn", "", "ISBN")
	fs.StringVar(&cmd.DatabasePath, "db", "", "Path to a sqlite database (default: DATABASE_* settings)")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s add-book -title <title> [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Add a book to the catalogue.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExample:\n")
		fmt.Fprintf(os.Stderr, "  %s add-book -title \"Dune\" -author \"Frank Herbert\" -isbn 9780441013593\n", os.Args[0])
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	if cmd.Title == "" {
		return fmt.Errorf("required flag -title not provided")
	}

	return nil
}

func (cmd *AddBookCommand) Run() error {
	db, err := openDatabase(cmd.DatabasePath)
	if err != nil {
		return err
	}
	defer db.Close()

	auditService := newAuditService(db)
	defer auditService.Wait()

	bookService := services.NewBookService(books.NewRepository(db.DB), auditService)
	book, err := bookService.Create(context.Background(), 0, cmd.Title, cmd.Author, cmd.ISBN)
	if err != nil {
		return fmt.Errorf("failed to add book: %w", err)
	}

	fmt.Fprintf(cmd.Out, "Added book %q (id %d)\n", book.Title, book.ID)
	return nil
}
